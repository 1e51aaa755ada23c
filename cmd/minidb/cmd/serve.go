/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/minidb/pkg/api"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the read-only MiniDB REST API over the .mdb files in the data
directory. Files are addressed by bare name, e.g.

  GET /api/v1/files/contacts.mdb/rows/1
  GET /api/v1/files/contacts.mdb/rows?column=email&value=bob@chicago.com

When security.api_key is set every /api/v1 request must carry it in the
X-API-Key header.

Examples:
  minidb serve --data-dir ./data
  minidb serve --port 9000 --bind 0.0.0.0 --api-key mysecretkey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			// Override config with command line flags if provided
			flags := cmd.Flags()
			if flags.Changed("port") {
				a.cfg.Port, _ = flags.GetInt("port")
			}
			if flags.Changed("bind") {
				a.cfg.Bind, _ = flags.GetString("bind")
			}
			if flags.Changed("api-key") {
				a.cfg.Security.APIKey, _ = flags.GetString("api-key")
			}

			info, err := os.Stat(a.cfg.DataDir)
			if err != nil {
				return fmt.Errorf("data directory %s: %w", a.cfg.DataDir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("data directory %s is not a directory", a.cfg.DataDir)
			}

			if container == nil {
				return errors.New("dependency container not initialized")
			}
			starter := container.GetServerFactory().CreateServerStarter()

			config := api.ServerConfig{
				Port:    a.cfg.Port,
				Bind:    a.cfg.Bind,
				APIKey:  a.cfg.Security.APIKey,
				DataDir: a.cfg.DataDir,
			}
			if config.APIKey == "" {
				a.logger.Warn("no API key configured, authentication is disabled")
			}
			return starter.StartServer(a.querier, config, a.logger)
		},
	}

	c.Flags().IntP("port", "p", 8080, "Port to listen on")
	c.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	c.Flags().String("api-key", "", "API key required in X-API-Key (empty disables authentication)")
	return c
}
