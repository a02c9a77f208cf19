/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bforest/pkg/di"
	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

type ctxKey string

const (
	ctxTrie ctxKey = "trie"
	ctxLog  ctxKey = "log"
)

var container *di.Container

// SetContainer injects the dependency container built in main().
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forest",
	Short: "forest - an ordered byte-keyed store backed by a binary radix trie",
	Long: `forest is a key-value store that orders keys by their byte content in a
compact PATRICIA trie ("B-forest"), with a durable, crash-recoverable log
behind it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}

		dataDir, _ := cmd.Flags().GetString("data-dir")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		log, err := storage.Open(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open durable log: %w", err)
		}

		recovered, err := storage.NewLoader(log).LoadAll()
		if err != nil {
			log.Close()
			return fmt.Errorf("failed to replay durable log: %w", err)
		}

		idx, err := trie.NewFromSorted[*record.Record](record.ProjectKey, recovered)
		if err != nil {
			log.Close()
			return fmt.Errorf("failed to rebuild trie: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), ctxTrie, idx)
		ctx = context.WithValue(ctx, ctxLog, log)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log, ok := cmd.Context().Value(ctxLog).(*storage.DurableLog); ok {
			return log.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the durable log")
}
