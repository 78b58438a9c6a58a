// Package mcp provides the Model Context Protocol (MCP) server for lucidity using mcp-go.
//
// This package implements an MCP server that lets AI assistants analyze the
// pending git changes of a workspace for code quality issues. The server
// exposes the analysis pipeline as tools and the prompt composer as an MCP
// prompt.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go).
//
// # Tools
//
//   - analyze_code_quality: collects the workspace's staged and unstaged
//     diffs and returns a JSON report with one ready-to-run analysis prompt
//     per changed file. Noise like lockfiles is filtered out.
//   - list_changed_files: reports whether the workspace is clean and lists
//     the staging/worktree status of every pending file.
//
// # Prompts
//
//   - analyze_code: composes the analysis prompt for an inline code snippet,
//     without touching git.
//
// # Security
//
// File paths parsed out of diff output are validated through the fileops
// package before they reach a prompt, so crafted diffs cannot smuggle
// traversal sequences to callers that feed result keys back into filesystem
// operations. The server itself never writes to the workspace.
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants that
// support MCP integration. It can also be started manually for testing:
//
//	lucidity-mcp serve
//
// The server reads JSON-RPC requests from stdin and writes responses to
// stdout until it receives EOF or is terminated. All logging goes to stderr
// or, with DEBUG set, to a file; stdout belongs to the protocol.
//
// # Architecture
//
// The Server struct contains:
//   - config: Application configuration with dimension directory and skip suffixes
//   - logger: Application logger for debugging and audit
//   - library: The dimension library backing prompt composition
//   - analyzer: The analysis pipeline mapped by the tool handlers
//   - mcpServer: The underlying mcp-go server instance
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
