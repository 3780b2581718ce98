// internal/benchmark/benchmark.go
// Package benchmark times repeated generate calls against each selected model.
package benchmark

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mwiater/modelbench/internal/logging"
)

// Generator produces text from a model for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Config controls a benchmark run.
type Config struct {
	// Repeat is the number of rounds issued per model.
	Repeat int
}

// Result is the aggregate for one model. AvgTime is nil when every round failed.
type Result struct {
	Model     string   `json:"model"`
	AvgTime   *float64 `json:"avgTime"`
	Responses []string `json:"responses"`
}

// Runner issues rounds one at a time, model after model.
type Runner struct {
	gen    Generator
	cfg    Config
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	roundColor   = color.New(color.FgYellow)
	elapsedColor = color.New(color.FgGreen)
	averageColor = color.New(color.FgMagenta, color.Bold)
	errorColor   = color.New(color.FgRed)
)

// NewRunner returns a Runner that prints progress to out and round failures to errOut.
func NewRunner(gen Generator, cfg Config, out, errOut io.Writer) *Runner {
	if cfg.Repeat <= 0 {
		cfg.Repeat = 1
	}
	return &Runner{gen: gen, cfg: cfg, out: out, errOut: errOut, now: time.Now}
}

// Run benchmarks every model in order and returns one Result per model.
// A failed round is reported and skipped. If ctx is cancelled the partial
// results are dropped and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, models []string, prompt string) ([]Result, error) {
	results := make([]Result, 0, len(models))
	for _, model := range models {
		res, err := r.runModel(ctx, model, prompt)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runModel(ctx context.Context, model, prompt string) (Result, error) {
	headerColor.Fprintf(r.out, "\nTesting model: %s\n\n", model)
	logging.LogEvent("benchmark model=%s rounds=%d", model, r.cfg.Repeat)

	times := make([]float64, 0, r.cfg.Repeat)
	responses := make([]string, 0, r.cfg.Repeat)

	for i := 1; i <= r.cfg.Repeat; i++ {
		if err := ctx.Err(); err != nil {
			logging.LogEvent("benchmark cancelled model=%s round=%d: %v", model, i, err)
			return Result{}, err
		}

		start := r.now()
		response, err := r.gen.Generate(ctx, model, prompt)
		elapsed := float64(r.now().Sub(start)) / float64(time.Millisecond)

		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			errorColor.Fprintf(r.errOut, "Error running model %s round %d: %v\n", model, i, err)
			logging.LogEvent("round failed model=%s round=%d: %v", model, i, err)
		} else {
			times = append(times, elapsed)
			responses = append(responses, response)
			roundColor.Fprintf(r.out, "\n%s round %d:\n", model, i)
			fmt.Fprintf(r.out, "Response:\n%s\n", response)
			elapsedColor.Fprintf(r.out, "Generated in %.2f seconds\n\n", elapsed/1000)
			logging.LogEvent("round complete model=%s round=%d elapsed_ms=%.2f", model, i, elapsed)
		}

		if i < r.cfg.Repeat {
			fmt.Fprintf(r.out, "--------\n\n")
		}
	}

	avg := Mean(times)
	if avg == nil {
		averageColor.Fprintf(r.out, "\n%s Average Time: no successful rounds\n", model)
		logging.LogEvent("benchmark model=%s no successful rounds", model)
	} else {
		averageColor.Fprintf(r.out, "\n%s Average Time: %.2f seconds\n", model, *avg/1000)
		logging.LogEvent("benchmark model=%s avg_ms=%.2f samples=%d", model, *avg, len(times))
	}
	return Result{Model: model, AvgTime: avg, Responses: responses}, nil
}

// Mean returns the arithmetic mean of values, or nil when values is empty.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}
