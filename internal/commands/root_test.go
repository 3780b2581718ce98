// internal/commands/root_test.go
package modelbench

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootRegistersCommands(t *testing.T) {
	cases := []struct {
		args  []string
		short string
	}{
		{[]string{"run"}, "Benchmark selected models on a shared prompt"},
		{[]string{"report"}, "Regenerate the HTML report from results.json"},
		{[]string{"list", "models"}, "List all models on the configured host"},
		{[]string{"list", "commands"}, "List all commands and subcommands in two columns"},
		{[]string{"show", "config"}, "Show config settings"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			cmd, rest, err := rootCmd.Find(tc.args)
			if err != nil {
				t.Fatalf("Find(%v) error: %v", tc.args, err)
			}
			if len(rest) != 0 || cmd.Short != tc.short {
				t.Fatalf("Find(%v) = %q with leftover %v", tc.args, cmd.CommandPath(), rest)
			}
		})
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range append([]string{"config"}, persistentFlagNames...) {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("expected persistent flag --%s", name)
		}
	}
	if f := rootCmd.PersistentFlags().ShorthandLookup("c"); f == nil || f.Name != "config" {
		t.Fatal("expected -c to be the config shorthand")
	}
	for _, name := range []string{"models", "prompt"} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected run flag --%s", name)
		}
	}
}

func TestRootUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"benchmark"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	if _, err := rootCmd.ExecuteC(); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(buf.String(), `unknown command "benchmark" for "modelbench"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
