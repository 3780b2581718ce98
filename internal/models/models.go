// internal/models/models.go
// Package models enumerates the models installed on the inference runtime.
package models

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp"
	"github.com/mwiater/modelbench/internal/providers"
)

// Inventory is the subset of runtime operations used when printing installed models.
type Inventory interface {
	providers.ModelSource
	LoadedModels(ctx context.Context) ([]string, error)
}

// SortedNames projects the name of every record and sorts them ascending.
// Duplicate names are kept.
func SortedNames(records []providers.ModelInfo) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}
	sort.Strings(names)
	return names
}

// FetchNames lists the installed models on src and returns their sorted names.
func FetchNames(ctx context.Context, src providers.ModelSource) ([]string, error) {
	records, err := src.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return SortedNames(records), nil
}

// ListModels prints every installed model sorted by name, marking models that
// are currently loaded in memory. When debug is set the raw records are dumped as well.
func ListModels(ctx context.Context, out io.Writer, host string, inv Inventory, debug bool) error {
	nodeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	modelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	loadedModelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	records, err := inv.ListModels(ctx)
	if err != nil {
		return err
	}
	if debug {
		pp.Fprintln(out, records)
	}

	loaded := make(map[string]struct{})
	if names, err := inv.LoadedModels(ctx); err == nil {
		for _, name := range names {
			loaded[name] = struct{}{}
		}
	} else {
		fmt.Fprintf(out, "could not get running models: %v\n", err)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	fmt.Fprintln(out, nodeStyle.Render(fmt.Sprintf("%s:", host)))
	if len(records) == 0 {
		fmt.Fprintln(out, "  >>> no models installed")
	}
	for _, record := range records {
		line := modelStyle.Render(record.Name)
		if _, ok := loaded[record.Name]; ok {
			line = loadedModelStyle.Render(fmt.Sprintf("%s (CURRENTLY LOADED)", record.Name))
		}
		details := FormatSize(record.Size)
		if !record.ModifiedAt.IsZero() {
			details = fmt.Sprintf("%s, modified %s", details, record.ModifiedAt.Format("2006-01-02"))
		}
		fmt.Fprintf(out, "  >>> %s %s\n", line, detailStyle.Render("["+details+"]"))
	}
	fmt.Fprintln(out)
	return nil
}

// FormatSize formats a byte count in human-readable form.
func FormatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
