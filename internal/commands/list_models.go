// internal/commands/list_models.go
package modelbench

import (
	"github.com/mwiater/modelbench/internal/models"
	"github.com/spf13/cobra"
)

// listModelsCmd implements 'list models', which enumerates the models
// installed on the configured host and marks the ones currently loaded.
var listModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List all models on the configured host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		rt, err := newRuntime(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()
		return models.ListModels(cmd.Context(), cmd.OutOrStdout(), cfg.HostURL(), rt, cfg.Debug)
	},
}

func init() {
	listCmd.AddCommand(listModelsCmd)
}
