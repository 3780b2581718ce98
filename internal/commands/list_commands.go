// internal/commands/list_commands.go
package modelbench

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// commandEntry is one row of the command tree: an indented path and its short description.
type commandEntry struct {
	Path        string
	Description string
}

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Run: func(cmd *cobra.Command, args []string) {
		commandData := collectCommandData(rootCmd, "", "")
		filtered := make([]commandEntry, 0, len(commandData))
		for _, data := range commandData {
			if strings.Contains(data.Path, "completion") || strings.Contains(data.Path, " help") {
				continue
			}
			filtered = append(filtered, data)
		}
		printCommandTree(cmd.OutOrStdout(), filtered)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree and returns a flattened slice of
// indented path/description pairs.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandEntry {
	var allData []commandEntry

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData = append(allData, commandEntry{
		Path:        indent + fullPath,
		Description: cmd.Short,
	})

	for _, subCmd := range cmd.Commands() {
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}

	return allData
}

// printCommandTree writes entries as aligned path/description columns, styled
// like the model listing.
func printCommandTree(out io.Writer, entries []commandEntry) {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Path))
	}

	fmt.Fprintln(out, headerStyle.Render("Commands and Subcommands:"))
	for _, e := range entries {
		pad := strings.Repeat(" ", width-len(e.Path)+2)
		fmt.Fprintf(out, "  %s%s%s\n", pathStyle.Render(e.Path), pad, descStyle.Render(e.Description))
	}
}
