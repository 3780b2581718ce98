// internal/selector/selector.go
// Package selector gathers the models to benchmark and the prompt to send them.
package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("selection aborted")
	// ErrNoChoices is returned when there are no models to choose from.
	ErrNoChoices = errors.New("no models available to select")
	// ErrNotInteractive is returned when an interactive prompt is requested without a terminal.
	ErrNotInteractive = errors.New("stdin is not a terminal; use --models and --prompt")
)

// Selector asks for the models to benchmark and the prompt shared by every round.
type Selector interface {
	SelectModels(names []string) ([]string, error)
	Prompt() (string, error)
}

// Static answers both questions from preset values.
type Static struct {
	Models []string
	Text   string
}

// SelectModels returns the preset models in their given order. Every preset
// model must be present in names.
func (s Static) SelectModels(names []string) ([]string, error) {
	installed := make(map[string]struct{}, len(names))
	for _, name := range names {
		installed[name] = struct{}{}
	}
	chosen := make([]string, 0, len(s.Models))
	for _, m := range s.Models {
		if _, ok := installed[m]; !ok {
			return nil, fmt.Errorf("model %q is not installed", m)
		}
		chosen = append(chosen, m)
	}
	return chosen, nil
}

// Prompt returns the preset prompt verbatim.
func (s Static) Prompt() (string, error) {
	return s.Text, nil
}
