package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const configTemplate = `# tollgate configuration
# Generated by tollgate init

server:
  http_addr: %q
  trust_forwarded_for: false

database:
  path: %q

auth:
  jwt_secret: %q

rate_limit:
  address_cooldown: "5s"
  principal_cooldown: "3s"

logging:
  level: "info"
  format: "text"

metrics:
  enabled: true
  path: "/metrics"
`

// generateSecret returns a random base64 secret long enough for the token codec.
func generateSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generating JWT secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(secretBytes), nil
}

// writeConfig renders a fresh config with a random secret to path.
func writeConfig(path, httpAddr, dbPath string) error {
	secret, err := generateSecret()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content := fmt.Sprintf(configTemplate, httpAddr, dbPath, secret)
	// 0600: the file holds the signing secret.
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func newInitCmd() *cobra.Command {
	var httpAddr string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with a random signing secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := getConfigPath()

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
			}

			dbPath := filepath.Join(getDataPath(), "tollgate.db")
			if err := writeConfig(configPath, httpAddr, dbPath); err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("  ✓ Created config: %s\n", configPath)
			fmt.Printf("  Database: %s\n", dbPath)
			fmt.Println()
			fmt.Println("  To start the server:")
			fmt.Println("    tollgate serve")
			return nil
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:3000", "HTTP listen address")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}
