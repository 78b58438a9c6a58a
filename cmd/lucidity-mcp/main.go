// Package main is the entry point for the lucidity-mcp application.
//
// The binary speaks the Model Context Protocol over stdio by default and
// also offers a one-shot preview mode for humans. The startup sequence:
//
// 1. Initialize the logging system (stderr, or a file when DEBUG is set;
//    stdout belongs to the JSON-RPC stream)
// 2. Load user configuration from disk
// 3. Serve MCP over stdio, or render a local analysis in the terminal
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hyperb1iss/lucidity-mcp/internal/analysis"
	"github.com/hyperb1iss/lucidity-mcp/internal/config"
	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
	"github.com/hyperb1iss/lucidity-mcp/internal/mcp"
	"github.com/hyperb1iss/lucidity-mcp/internal/prompt"
	"github.com/hyperb1iss/lucidity-mcp/internal/repository"
	"github.com/hyperb1iss/lucidity-mcp/internal/ui"
	"github.com/hyperb1iss/lucidity-mcp/pkg/fileops"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string

	previewWorkspace string
	previewPath      string
	previewFocus     string
	previewPlain     bool
	previewWidth     int
)

func versionString() string {
	return fmt.Sprintf("lucidity-mcp %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "lucidity-mcp",
		Short: "MCP server that analyzes pending git changes for code quality issues",
		Long: "lucidity-mcp — a Model Context Protocol server that turns a workspace's " +
			"pending git changes into ready-to-run code quality analysis prompts.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio (the default)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Analyze the pending changes of a workspace and render the report locally",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPreview()
		},
		SilenceUsage: true,
	}
	previewCmd.Flags().StringVar(&previewWorkspace, "workspace", "", "workspace root (defaults to the current directory)")
	previewCmd.Flags().StringVar(&previewPath, "path", "", "restrict the analysis to one file or directory")
	previewCmd.Flags().StringVar(&previewFocus, "focus", "", "comma-separated dimension keys, e.g. security,performance")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "disable ANSI styling and markdown rendering")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "target line width (0 = default)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path and loads the configuration, applying
// the logger level it carries.
func loadConfig(logger *logging.AppLogger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFrom(fileops.ExpandPath(configPath))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.LogLevel != "" {
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn("Ignoring unknown log level", "level", cfg.LogLevel)
		}
	}

	return cfg, nil
}

func runServe() error {
	logger := logging.NewAppLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(cfg, logger)
	return server.Start()
}

func runPreview() error {
	logger := logging.NewAppLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	workspace := previewWorkspace
	if workspace == "" {
		workspace, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	} else {
		workspace = fileops.ExpandPath(workspace)
	}

	library := prompt.NewLibrary()
	if _, err := library.LoadCustomDir(cfg.DimensionsDir, logger); err != nil {
		logger.Warn("Could not load custom dimensions", "dir", cfg.DimensionsDir, "error", err)
	}

	analyzer := analysis.NewAnalyzer(repository.NewCollector(logger), library, logger, cfg.SkipSuffixes...)
	report := analyzer.AnalyzeCodeQuality(context.Background(), analysis.Request{
		WorkspaceRoot: workspace,
		Path:          previewPath,
		FocusAreas:    parseFocusFlag(previewFocus),
	})

	out, err := ui.RenderReport(report, ui.RenderOptions{Width: previewWidth, Plain: previewPlain})
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// parseFocusFlag splits a comma-separated focus string into a slice of
// dimension keys. Returns nil if the input is empty.
func parseFocusFlag(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var keys []string
	for _, key := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
