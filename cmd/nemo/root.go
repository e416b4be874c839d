package main

import (
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nemosite/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "nemo",
	Short: "NEMO blog and content site",
	Long:  "NEMO serves the site: server-rendered pages, a post editor and flat markdown content.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	// Running the bare binary starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createUserCmd)
}

// loadConfig reads .env (when present) and the environment.
func loadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}
	return config.Load()
}
