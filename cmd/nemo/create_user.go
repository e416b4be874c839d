package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nemosite/internal/db"
	"github.com/nemosite/internal/service"
)

var createUserFlags struct {
	Email    string
	Name     string
	Password string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Provision a maintainer account",
	Long:  "Accounts are created out-of-band; there is no signup page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gdb, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}

		users := service.NewUserService(gdb)
		user, err := users.Create(createUserFlags.Email, createUserFlags.Password, createUserFlags.Name)
		if err != nil {
			if errors.Is(err, service.ErrDuplicateEmail) {
				return fmt.Errorf("user with email %q already exists", createUserFlags.Email)
			}
			return err
		}

		log.Info("user created", "email", user.Email, "name", user.Name)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&createUserFlags.Email, "email", "", "Email address (login identity)")
	createUserCmd.Flags().StringVar(&createUserFlags.Name, "name", "", "Display name (defaults to \"user\")")
	createUserCmd.Flags().StringVar(&createUserFlags.Password, "password", "", "Password for the new account")
	createUserCmd.MarkFlagRequired("email")
	createUserCmd.MarkFlagRequired("password")
}
