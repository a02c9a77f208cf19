/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/storage"
	"github.com/ssargent/bforest/pkg/trie"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a key",
	Long: `Remove a key from the forest, appending a tombstone to the durable log.

Example:
  forest remove mykey`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, ok := cmd.Context().Value(ctxTrie).(*trie.Trie[*record.Record])
		if !ok {
			return fmt.Errorf("trie not found in context")
		}
		log, ok := cmd.Context().Value(ctxLog).(*storage.DurableLog)
		if !ok {
			return fmt.Errorf("durable log not found in context")
		}

		rec, found, err := idx.Remove([]byte(args[0]))
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		if !found {
			return fmt.Errorf("key not found: %s", args[0])
		}
		if err := log.Tombstone(rec.ID, rec.Key); err != nil {
			return fmt.Errorf("remove: %w", err)
		}

		cmd.Printf("removed %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
