// internal/commands/root.go
package modelbench

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/modelbench/internal/appconfig"
	"github.com/mwiater/modelbench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "modelbench",
	Short:        "modelbench: compare local Ollama models on a shared prompt",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		cfg := appconfig.Default()
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = path
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("host", appconfig.DefaultHost, "Ollama base URL")
	rootCmd.PersistentFlags().Int("repeat", appconfig.DefaultRepeat, "number of rounds per model")
	rootCmd.PersistentFlags().Bool("chart", true, "write the HTML comparison report")
	rootCmd.PersistentFlags().String("outputDir", appconfig.DefaultOutputDir, "directory for results.json and the HTML report")
	rootCmd.PersistentFlags().Int("timeout", 600, "seconds to wait for a single runtime request")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	for _, name := range []string{"host", "repeat", "chart", "outputDir", "timeout", "logFile", "debug"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// ensureConfigLoaded points viper at the resolved config file, reads it and
// returns its path. When no file exists at the default locations the path is
// empty and flag values and defaults apply.
func ensureConfigLoaded() (string, error) {
	path, err := appconfig.ResolvePath(cfgFile)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return path, nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
