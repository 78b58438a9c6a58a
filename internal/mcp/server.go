package mcp

import (
	"fmt"

	"github.com/hyperb1iss/lucidity-mcp/internal/analysis"
	"github.com/hyperb1iss/lucidity-mcp/internal/config"
	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
	"github.com/hyperb1iss/lucidity-mcp/internal/prompt"
	"github.com/hyperb1iss/lucidity-mcp/internal/repository"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "lucidity-mcp"
	serverVersion = "1.0.0"
)

// serverInstructions is advertised to clients at initialize time.
const serverInstructions = `Lucidity analyzes pending git changes for code quality issues
across ten dimensions (complexity, abstraction, deletion, hallucination, style,
security, performance, duplication, error handling, testing).

## Workflow
1. Call analyze_code_quality with the absolute workspace_root of the repository
   you are working in. Narrow the run with path (one file or directory) and
   focus_areas (dimension keys such as security or performance) when useful.
2. The result contains one analysis_prompt per changed file. Run each prompt and
   report the issues it surfaces, rated Critical, High, Medium, or Low.
3. Use list_changed_files when you only need to know what changed.

Lockfiles and other generated noise are filtered out automatically, as are files
with fewer than ten characters of modified code.`

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	library   *prompt.Library
	analyzer  *analysis.Analyzer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Start initializes and starts the MCP server
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	s.initComponents()

	s.logger.Info("MCP server created, starting stdio communication")

	// Stdout carries the JSON-RPC stream; protocol errors go to the
	// app logger's stderr via the standard-log bridge.
	if err := server.ServeStdio(s.mcpServer, server.WithErrorLogger(s.logger.StandardLog())); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the MCP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server handles cleanup when the stdio stream closes
	return nil
}

// initComponents builds the prompt library and analyzer, then wires both
// into a fresh mcp-go server with all tools and prompts registered.
func (s *Server) initComponents() {
	library := prompt.NewLibrary()
	if _, err := library.LoadCustomDir(s.config.DimensionsDir, s.logger); err != nil {
		// Custom dimensions are optional; the built-in ten always work.
		s.logger.Warn("Could not load custom dimensions", "dir", s.config.DimensionsDir, "error", err)
	}
	s.library = library

	collector := repository.NewCollector(s.logger)
	s.analyzer = analysis.NewAnalyzer(collector, library, s.logger, s.config.SkipSuffixes...)

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	s.mcpServer.AddTool(analyzeCodeQualityTool(), s.handleAnalyzeCodeQuality)
	s.mcpServer.AddTool(listChangedFilesTool(), s.handleListChangedFiles)
	s.mcpServer.AddPrompt(analyzeCodePrompt(), s.handleAnalyzeCodePrompt)
}
