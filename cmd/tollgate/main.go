// ABOUTME: Entry point for the tollgate API server
// ABOUTME: Defines the cobra root command and config path resolution

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  _        _ _             _
 | |_ ___ | | | __ _  __ _| |_ ___
 | __/ _ \| | |/ _' |/ _' | __/ _ \
 | || (_) | | | (_| | (_| | ||  __/
  \__\___/|_|_|\__, |\__,_|\__\___|
               |___/
`

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "tollgate",
	Short:         "Credential-gated web API with per-address and per-user rate limiting",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $TOLLGATE_CONFIG or ~/.config/tollgate/config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
}

// getConfigPath returns the path to the config file.
// Priority: --config > TOLLGATE_CONFIG env var > XDG_CONFIG_HOME/tollgate/config.yaml > ~/.config/tollgate/config.yaml
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envPath := os.Getenv("TOLLGATE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "tollgate", "config.yaml")
}

// getDataPath returns the path to the tollgate data directory.
// Priority: XDG_DATA_HOME/tollgate > ~/.local/share/tollgate
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "tollgate")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
