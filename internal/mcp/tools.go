package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperb1iss/lucidity-mcp/internal/analysis"
	"github.com/hyperb1iss/lucidity-mcp/internal/repository"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeCodeQualityTool defines the primary analysis tool.
func analyzeCodeQualityTool() mcp.Tool {
	return mcp.NewTool("analyze_code_quality",
		mcp.WithDescription("Analyze pending git changes for code quality issues across ten "+
			"dimensions. Returns one ready-to-run analysis prompt per changed file."),
		mcp.WithString("workspace_root",
			mcp.Required(),
			mcp.Description("Absolute path to the workspace or repository root"),
		),
		mcp.WithString("path",
			mcp.Description("Optional repository-relative path restricting the analysis to one file or directory"),
		),
		mcp.WithArray("focus_areas",
			mcp.Description("Optional dimension keys narrowing the analysis, e.g. security, performance"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// handleAnalyzeCodeQuality maps a tool call onto the analyzer and returns the
// report as pretty-printed JSON. Argument problems become protocol-level tool
// errors, never Go errors, so the client always receives a result.
func (s *Server) handleAnalyzeCodeQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reqLogger := s.logger.With("request_id", uuid.NewString(), "tool", "analyze_code_quality")

	workspaceRoot, err := request.RequireString("workspace_root")
	if err != nil {
		reqLogger.Warn("Rejecting request without workspace_root", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := analysis.Request{
		WorkspaceRoot: workspaceRoot,
		Path:          request.GetString("path", ""),
		FocusAreas:    request.GetStringSlice("focus_areas", nil),
	}

	reqLogger.Info("Handling analysis request", "workspace", req.WorkspaceRoot, "path", req.Path)
	report := s.analyzer.AnalyzeCodeQuality(ctx, req)
	reqLogger.Info("Analysis finished", "status", report.Status, "fileCount", report.FileCount)

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		reqLogger.Error("Failed to encode report", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %s", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// listChangedFilesTool defines the lightweight status tool.
func listChangedFilesTool() mcp.Tool {
	return mcp.NewTool("list_changed_files",
		mcp.WithDescription("List files with pending changes in a workspace, with their "+
			"staging and worktree git status."),
		mcp.WithString("workspace_root",
			mcp.Required(),
			mcp.Description("Absolute path to the workspace or repository root"),
		),
	)
}

func (s *Server) handleListChangedFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reqLogger := s.logger.With("request_id", uuid.NewString(), "tool", "list_changed_files")

	workspaceRoot, err := request.RequireString("workspace_root")
	if err != nil {
		reqLogger.Warn("Rejecting request without workspace_root", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := repository.InspectWorkspace(workspaceRoot)
	if err != nil {
		reqLogger.Warn("Workspace inspection failed", "workspace", workspaceRoot, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to inspect workspace: %s", err)), nil
	}

	reqLogger.Info("Workspace inspected", "root", status.Root, "clean", status.Clean, "fileCount", len(status.Files))

	payload, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		reqLogger.Error("Failed to encode workspace status", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode workspace status: %s", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
