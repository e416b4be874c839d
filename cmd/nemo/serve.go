package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nemosite/internal/config"
	"github.com/nemosite/internal/content"
	"github.com/nemosite/internal/db"
	"github.com/nemosite/internal/handler"
	"github.com/nemosite/internal/router"
	"github.com/nemosite/internal/upload"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	source := newContentSource(cfg, gdb)
	uploads := newUploadStore(cfg)

	api := handler.NewAPI(gdb, source, uploads, cfg.SiteName)

	// LoadHTMLGlob panics on an empty glob, so only mount templates that
	// are actually deployed alongside the binary.
	templateGlob := filepath.Join("web", "template", "*.html")
	if matches, globErr := filepath.Glob(templateGlob); globErr != nil || len(matches) == 0 {
		log.Warn("no page templates found", "glob", templateGlob)
		templateGlob = ""
	}

	r := router.Setup(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		TemplateGlob:  templateGlob,
		StaticDir:     filepath.Join("web", "static"),
	})

	log.Info("starting server",
		"addr", cfg.ListenAddr,
		"content_source", cfg.ContentSource,
		"content_dir", cfg.ContentDir,
	)
	return r.Run(cfg.ListenAddr)
}

// newContentSource picks the deployment-configured content backend.
func newContentSource(cfg config.AppConfig, gdb *gorm.DB) content.Source {
	if cfg.ContentSource == "database" {
		return content.NewDatabaseSource(gdb)
	}
	return content.NewFlatFileSource(cfg.ContentDir, cfg.ContentExt, cfg.ContentAutoReload)
}

func newUploadStore(cfg config.AppConfig) *upload.Store {
	return upload.NewStore(cfg.UploadDir, cfg.UploadURLPath)
}
