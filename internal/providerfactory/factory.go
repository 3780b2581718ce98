// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"

	"github.com/mwiater/modelbench/internal/appconfig"
	"github.com/mwiater/modelbench/internal/logging"
	"github.com/mwiater/modelbench/internal/providers"
	"github.com/mwiater/modelbench/internal/providers/ollama"
)

// NewRuntime returns the inference runtime client described by cfg.
func NewRuntime(cfg *appconfig.Config) (providers.Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider := ollama.New(cfg)
	logging.LogEvent("ollama runtime ready: host=%s timeout=%s", provider.Host(), cfg.RequestTimeout())
	return provider, nil
}
