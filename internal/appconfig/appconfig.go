// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultHost is the local Ollama endpoint used when no host is configured.
	DefaultHost = "http://localhost:11434"
	// DefaultRepeat is the number of rounds each selected model is benchmarked.
	DefaultRepeat = 5
	// DefaultOutputDir is the directory that receives results.json and the HTML report.
	DefaultOutputDir = "data"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 600 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Host           string `json:"host" mapstructure:"host"`
	Repeat         int    `json:"repeat" mapstructure:"repeat"`
	Chart          bool   `json:"chart" mapstructure:"chart"`
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// Default returns a Config populated with every default value.
func Default() Config {
	return Config{
		Host:           DefaultHost,
		Repeat:         DefaultRepeat,
		Chart:          true,
		OutputDir:      DefaultOutputDir,
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
	}
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "modelbench.log"
}

// HostURL returns the configured runtime endpoint without a trailing slash.
func (c Config) HostURL() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = DefaultHost
	}
	return strings.TrimRight(host, "/")
}

// OutputPath returns the output directory, applying the default when unset.
func (c Config) OutputPath() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return DefaultOutputDir
}

// Validate reports configuration values that cannot drive a benchmark run.
func (c Config) Validate() error {
	if c.Repeat <= 0 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Repeat)
	}
	u, err := url.Parse(c.HostURL())
	if err != nil {
		return fmt.Errorf("invalid host %q: %w", c.Host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid host %q: scheme must be http or https", c.Host)
	}
	return nil
}

// ResolvePath returns the configuration file to read. An explicit path must
// exist. The default path falls back to the legacy location, and when neither
// exists an empty path is returned so defaults apply.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if path != DefaultConfigPath {
		return "", fmt.Errorf("no configuration file found at %q", path)
	}
	if _, err := os.Stat(legacyConfigPath); err == nil {
		return legacyConfigPath, nil
	}
	return "", nil
}
