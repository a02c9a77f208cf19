/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bforest/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a forest configuration file for local development",
	Long: `Initialize forest's configuration file with default settings.

This command will:
- Write a configuration file with the default bind address and port, the
  given data directory, and the given branch capacity

It does not create the data directory itself.

Examples:
  forest init
  forest init --data-dir=./data --branch-capacity=64`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		branchCapacity, _ := cmd.Flags().GetInt("branch-capacity")
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if dataDir == "" {
			dataDir = "./data"
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(1)
		}
		cfg.BranchCapacity = branchCapacity
		if err := config.SaveConfig(cfg, configPath); err != nil {
			cmd.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Initialized forest configuration at %s\n", configPath)
		cmd.Printf("Data directory: %s\n", dataDir)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  forest serve --data-dir=%s\n", dataDir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "./data", "Data directory for the durable log")
	initCmd.Flags().Int("branch-capacity", 255, "Per-tree branch capacity (1-255)")
	initCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
