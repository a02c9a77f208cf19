/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bforest/pkg/record"
	"github.com/ssargent/bforest/pkg/trie"
)

// prefixCmd represents the prefix command
var prefixCmd = &cobra.Command{
	Use:   "prefix <prefix>",
	Short: "List every key-value pair whose key starts with prefix",
	Long: `List every key-value pair whose key starts with prefix, in ascending
key order.

Example:
  forest prefix user:`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, ok := cmd.Context().Value(ctxTrie).(*trie.Trie[*record.Record])
		if !ok {
			return fmt.Errorf("trie not found in context")
		}

		it := idx.Prefix([]byte(args[0]))
		for {
			rec, found, err := it.Next()
			if err != nil {
				return fmt.Errorf("prefix: %w", err)
			}
			if !found {
				return nil
			}
			cmd.Printf("%s\t%s\n", rec.Key, rec.Value)
		}
	},
}

func init() {
	rootCmd.AddCommand(prefixCmd)
}
