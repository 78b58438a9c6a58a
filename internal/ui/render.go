// Package ui renders analysis reports for human terminals. The MCP path
// returns raw JSON; this package backs the preview subcommand only.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hyperb1iss/lucidity-mcp/internal/analysis"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Centralized Lip Gloss styles for the report renderer.
// All colors are specified using hex codes.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2")).
			MarginBottom(1)

	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5fd7ff"))

	metaStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)
)

const defaultWidth = 100

// RenderOptions controls terminal rendering of a report.
type RenderOptions struct {
	// Width is the target line width. Values below 20 fall back to 100.
	Width int
	// Plain disables ANSI styling and markdown rendering, for non-TTY use.
	Plain bool
}

// RenderReport renders an analysis report for a human terminal. Each file's
// analysis prompt is markdown and goes through glamour unless Plain is set.
func RenderReport(report *analysis.Report, opts RenderOptions) (string, error) {
	width := opts.Width
	if width < 20 {
		width = defaultWidth
	}

	var b strings.Builder
	writeLine(&b, "Code Quality Analysis", titleStyle, opts.Plain)

	switch report.Status {
	case analysis.StatusError:
		writeLine(&b, report.Message, errorStyle, opts.Plain)
		return b.String(), nil
	case analysis.StatusNoChanges:
		writeLine(&b, report.Message, successStyle, opts.Plain)
		return b.String(), nil
	}

	writeLine(&b, fmt.Sprintf("%d file(s) analyzed", report.FileCount), metaStyle, opts.Plain)
	b.WriteString("\n")

	var renderer *glamour.TermRenderer
	if !opts.Plain {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(detectGlamourStyle(50*time.Millisecond)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
	}

	for _, path := range sortedResultPaths(report.Results) {
		result := report.Results[path]

		writeLine(&b, path, fileStyle, opts.Plain)

		if result.Status == "error" {
			writeLine(&b, result.Message, errorStyle, opts.Plain)
			b.WriteString("\n")
			continue
		}

		writeLine(&b, fmt.Sprintf("%s, %s", result.Status, result.Language), metaStyle, opts.Plain)

		if renderer != nil {
			rendered, err := renderer.Render(result.AnalysisPrompt)
			if err != nil {
				return "", fmt.Errorf("failed to render prompt for %s: %w", path, err)
			}
			b.WriteString(rendered)
		} else {
			b.WriteString(result.AnalysisPrompt)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if report.Instructions != "" {
		writeLine(&b, wordwrap.String(report.Instructions, width), metaStyle, opts.Plain)
	}

	return b.String(), nil
}

func writeLine(b *strings.Builder, text string, style lipgloss.Style, plain bool) {
	if plain {
		b.WriteString(text)
	} else {
		b.WriteString(style.Render(text))
	}
	b.WriteString("\n")
}

func sortedResultPaths(results map[string]analysis.FileResult) []string {
	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// detectGlamourStyle attempts to detect the terminal background using termenv,
// but will respect GLAMOUR_STYLE if set to a concrete value (not "auto").
// A timeout ensures we never hang on terminals that don't respond.
func detectGlamourStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		if termenv.NewOutput(os.Stdout).HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case detected := <-ch:
		return detected
	case <-time.After(timeout):
		return "dark"
	}
}
