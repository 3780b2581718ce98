// internal/commands/report.go
package modelbench

import (
	"fmt"

	"github.com/mwiater/modelbench/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd implements 'report', which rebuilds the HTML chart from an existing results.json.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the HTML report from results.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		writer := report.NewWriter(outputFs, GetConfig().OutputPath())
		results, err := writer.ReadJSON()
		if err != nil {
			return err
		}
		path, err := writer.WriteHTML(results)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart generated: %s (%d models)\n", path, len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
