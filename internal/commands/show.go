// internal/commands/show.go
package modelbench

import "github.com/spf13/cobra"

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show information about the current setup",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
