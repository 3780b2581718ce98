// internal/commands/list.go
package modelbench

import "github.com/spf13/cobra"

// listCmd groups the listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List models or commands",
}

func init() {
	rootCmd.AddCommand(listCmd)
}
