// internal/providers/provider.go

// Package providers defines the boundary between modelbench and the inference
// runtime that hosts the models. Implementations list installed models and
// serve single, non-streaming generate requests.
package providers

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrModelSourceUnavailable reports that installed models could not be enumerated.
	ErrModelSourceUnavailable = errors.New("model source unavailable")
	// ErrInvalidResponse reports a runtime payload that does not match the expected shape.
	ErrInvalidResponse = errors.New("invalid runtime response")
)

// ModelInfo describes one installed model as reported by the runtime.
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ModelSource enumerates installed models.
type ModelSource interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// Generator produces a single completion for a prompt. Calls block until the
// whole response is available.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Runtime is the full set of operations modelbench consumes.
type Runtime interface {
	ModelSource
	Generator
	// LoadedModels returns the names of models currently held in memory.
	LoadedModels(ctx context.Context) ([]string, error)
	// Close cleans up any resources used by the runtime client.
	Close() error
}
