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

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Insert or replace a key's value",
	Long: `Put a key-value pair into the forest, appending it to the durable log.

Example:
  forest put mykey myvalue`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, ok := cmd.Context().Value(ctxTrie).(*trie.Trie[*record.Record])
		if !ok {
			return fmt.Errorf("trie not found in context")
		}
		log, ok := cmd.Context().Value(ctxLog).(*storage.DurableLog)
		if !ok {
			return fmt.Errorf("durable log not found in context")
		}

		rec := record.New([]byte(args[0]), []byte(args[1]))
		if _, _, err := idx.Put(rec); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		if err := log.Append(rec); err != nil {
			return fmt.Errorf("put: %w", err)
		}

		cmd.Printf("put %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
