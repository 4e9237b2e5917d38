package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/tollgate/internal/config"
	"github.com/2389/tollgate/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := getConfigPath()

			cyan := color.New(color.FgCyan)
			cyan.Print(banner)
			gray := color.New(color.FgHiBlack)
			gray.Printf("    version: %s\n\n", version)

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger := setupLogger(cfg.Logging)

			green := color.New(color.FgGreen)
			green.Print("    ▶ ")
			fmt.Printf("Config:    %s\n", configPath)
			green.Print("    ▶ ")
			fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
			green.Print("    ▶ ")
			fmt.Printf("Cooldowns: address %s, user %s\n", cfg.RateLimit.AddressCooldown, cfg.RateLimit.PrincipalCooldown)
			if cfg.Metrics.Enabled {
				green.Print("    ▶ ")
				fmt.Printf("Metrics:   %s\n", cfg.Metrics.Path)
			}
			fmt.Println()

			srv, err := server.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return srv.Run(cmd.Context())
		},
	}
}
