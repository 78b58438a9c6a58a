package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperb1iss/lucidity-mcp/internal/language"

	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeCodePrompt defines the analyze_code MCP prompt: clients that prefer
// prompts over tools get the same composed analysis text for an inline
// snippet, without touching git.
func analyzeCodePrompt() mcp.Prompt {
	return mcp.NewPrompt("analyze_code",
		mcp.WithPromptDescription("Compose a code quality analysis prompt for a piece of code"),
		mcp.WithArgument("code",
			mcp.ArgumentDescription("The code to analyze"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("language",
			mcp.ArgumentDescription("Programming language of the code, defaults to text"),
		),
		mcp.WithArgument("original_code",
			mcp.ArgumentDescription("Previous version of the code, for regression comparison"),
		),
		mcp.WithArgument("focus_areas",
			mcp.ArgumentDescription("Comma-separated dimension keys, e.g. security,performance"),
		),
	)
}

func (s *Server) handleAnalyzeCodePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments

	code := args["code"]
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("code argument is required")
	}

	lang := args["language"]
	if lang == "" {
		lang = language.Fallback
	}

	var focus []string
	if raw := args["focus_areas"]; raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				focus = append(focus, key)
			}
		}
	}

	text := s.library.Generate(code, lang, args["original_code"], focus)

	return mcp.NewGetPromptResult(
		"Code quality analysis prompt",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
