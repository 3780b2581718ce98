package modelbench

import (
	"github.com/mwiater/modelbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Host:           viper.GetString("host"),
			Repeat:         viper.GetInt("repeat"),
			Chart:          viper.GetBool("chart"),
			OutputDir:      viper.GetString("outputDir"),
			TimeoutSeconds: viper.GetInt("timeout"),
			LogFile:        viper.GetString("logFile"),
			Debug:          viper.GetBool("debug"),
		}
		file := ""
		if cfg := GetConfig(); cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
