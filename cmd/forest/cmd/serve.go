/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bforest/pkg/api"
	"github.com/ssargent/bforest/pkg/config"
	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the forest REST API server",
	Long: `Start the REST API server over the trie rebuilt from the durable log
at --data-dir, loading configuration if present and falling back to
defaults (overridable by flags) otherwise.

Examples:
  forest serve
  forest serve --data-dir ./mydata --port 9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		configPath, _ := cmd.Flags().GetString("config")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		var cfg *config.Config
		var err error
		if config.ConfigExists(configPath) {
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		} else {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind = bind
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		idx, ok := cmd.Context().Value(ctxTrie).(*trie.Trie[*record.Record])
		if !ok {
			return fmt.Errorf("trie not found in context")
		}
		log, ok := cmd.Context().Value(ctxLog).(*storage.DurableLog)
		if !ok {
			return fmt.Errorf("durable log not found in context")
		}

		cmd.Printf("starting forest server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("data directory: %s\n", cfg.DataDir)

		serverFactory := container.GetServerFactory()
		serverStarter := serverFactory.CreateServerStarter()
		if err := serverStarter.StartServer(idx, log, api.ServerConfig{
			Port:    cfg.Port,
			Bind:    cfg.Bind,
			DataDir: cfg.DataDir,
		}); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
}
