// internal/commands/run.go
package modelbench

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwiater/modelbench/internal/appconfig"
	"github.com/mwiater/modelbench/internal/benchmark"
	"github.com/mwiater/modelbench/internal/logging"
	"github.com/mwiater/modelbench/internal/models"
	"github.com/mwiater/modelbench/internal/providerfactory"
	"github.com/mwiater/modelbench/internal/report"
	"github.com/mwiater/modelbench/internal/selector"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	newRuntime = providerfactory.NewRuntime
	outputFs   = afero.NewOsFs()
)

var (
	presetModels []string
	presetPrompt string
)

// runCmd implements 'run', the interactive benchmark.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark selected models on a shared prompt",
	Long: `The 'run' command lists the installed models, asks which ones to compare and
which prompt to send, then times each model sequentially and writes results.json
(plus comparison_report.html when charting is enabled) to the output directory.

Passing --models or --prompt skips the interactive prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := selectorFor(cmd)
		return runBenchmark(cmd.Context(), GetConfig(), sel, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&presetModels, "models", nil, "comma-separated models to benchmark without prompting")
	runCmd.Flags().StringVar(&presetPrompt, "prompt", "", "prompt to send without prompting")
	rootCmd.AddCommand(runCmd)
}

// selectorFor returns a static selector when either preset flag is set and
// the terminal selector otherwise.
func selectorFor(cmd *cobra.Command) selector.Selector {
	if cmd.Flags().Changed("models") || cmd.Flags().Changed("prompt") {
		return selector.Static{Models: presetModels, Text: presetPrompt}
	}
	in, _ := cmd.InOrStdin().(*os.File)
	return selector.NewTUI(in, cmd.OutOrStdout())
}

// runBenchmark drives one full benchmark: list, select, run, write.
func runBenchmark(ctx context.Context, cfg *appconfig.Config, sel selector.Selector, out, errOut io.Writer) error {
	runID := logging.StartRun()
	logging.LogEvent("benchmark run started id=%s host=%s repeat=%d", runID, cfg.HostURL(), cfg.Repeat)

	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	names, err := models.FetchNames(ctx, rt)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	chosen, err := sel.SelectModels(names)
	if err != nil {
		return err
	}
	prompt, err := sel.Prompt()
	if err != nil {
		return err
	}
	logging.LogEvent("selected models=[%s] prompt_chars=%d", strings.Join(chosen, ","), len(prompt))

	runner := benchmark.NewRunner(rt, benchmark.Config{Repeat: cfg.Repeat}, out, errOut)
	results, err := runner.Run(ctx, chosen, prompt)
	if err != nil {
		return fmt.Errorf("benchmark interrupted: %w", err)
	}

	writer := report.NewWriter(outputFs, cfg.OutputPath())
	path, err := writer.WriteJSON(results)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Results saved to %s\n", path)

	if cfg.Chart {
		path, err := writer.WriteHTML(results)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Chart generated: %s\n", path)
	}
	logging.LogEvent("benchmark run finished id=%s models=%d", runID, len(results))
	return nil
}
