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

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get the value stored under a key",
	Long: `Get the value stored under a key in the forest.

Example:
  forest get mykey`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, ok := cmd.Context().Value(ctxTrie).(*trie.Trie[*record.Record])
		if !ok {
			return fmt.Errorf("trie not found in context")
		}

		rec, found := idx.Get([]byte(args[0]))
		if !found {
			return fmt.Errorf("key not found: %s", args[0])
		}

		cmd.Println(string(rec.Value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
