// Package analysis orchestrates a code-quality analysis request: it
// acquires the workspace's pending changes and turns each changed file
// that survives noise filtering into a ready-to-run analysis prompt.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hyperb1iss/lucidity-mcp/internal/diff"
	"github.com/hyperb1iss/lucidity-mcp/internal/language"
	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
	"github.com/hyperb1iss/lucidity-mcp/internal/prompt"
	"github.com/hyperb1iss/lucidity-mcp/internal/repository"
	"github.com/hyperb1iss/lucidity-mcp/pkg/fileops"
)

// Status classifies the overall outcome of an analysis request.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusNoChanges Status = "no_changes"
	StatusError     Status = "error"
)

// Request carries the caller's arguments for one analysis run.
type Request struct {
	WorkspaceRoot string
	Path          string
	FocusAreas    []string
}

// FileResult is the per-file outcome. A successful entry carries the
// detected language and the composed prompt; a failed one carries status
// "error" and a message. Failures never abort the run.
type FileResult struct {
	Status         string `json:"status"`
	Language       string `json:"language,omitempty"`
	AnalysisPrompt string `json:"analysis_prompt,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Report aggregates an analysis run.
type Report struct {
	Status       Status                `json:"status"`
	Message      string                `json:"message,omitempty"`
	FileCount    int                   `json:"file_count"`
	Results      map[string]FileResult `json:"results,omitempty"`
	Instructions string                `json:"instructions,omitempty"`
}

// DiffSource produces the raw pending changes for a workspace.
// *repository.Collector is the production implementation.
type DiffSource interface {
	CollectDiffs(ctx context.Context, root, path string) repository.DiffText
}

// defaultSkipSuffixes lists path endings that never carry analyzable
// code, mostly lockfiles and other generated artifacts.
var defaultSkipSuffixes = []string{
	".lock", ".sum", ".mod", "package-lock.json", "yarn.lock", ".DS_Store",
}

// minChangeChars is the smallest trimmed modified-code size worth
// analyzing; anything shorter is treated as noise.
const minChangeChars = 10

// Instructions is the fixed consumption guide attached to successful
// reports.
const Instructions = "Each entry in results contains an analysis_prompt tailored to that " +
	"file's pending changes. Run each prompt and report the issues it surfaces, organized " +
	"by dimension with a severity rating (Critical, High, Medium, Low) per issue. Address " +
	"Critical and High findings first."

// Analyzer turns analysis requests into reports.
type Analyzer struct {
	source  DiffSource
	library *prompt.Library
	logger  *logging.AppLogger
	skip    []string
}

// NewAnalyzer wires an Analyzer. Extra skip suffixes extend the built-in
// noise list; they can never remove entries from it.
func NewAnalyzer(source DiffSource, library *prompt.Library, logger *logging.AppLogger, extraSkipSuffixes ...string) *Analyzer {
	skip := make([]string, 0, len(defaultSkipSuffixes)+len(extraSkipSuffixes))
	skip = append(skip, defaultSkipSuffixes...)
	skip = append(skip, extraSkipSuffixes...)

	return &Analyzer{
		source:  source,
		library: library,
		logger:  logger,
		skip:    skip,
	}
}

// AnalyzeCodeQuality runs one analysis request end to end. It never
// returns an error: every failure mode is folded into the report's status
// so the protocol layer can hand it straight back to the caller.
func (a *Analyzer) AnalyzeCodeQuality(ctx context.Context, req Request) *Report {
	start := time.Now()
	defer a.logger.LogPerformance("analyze_code_quality", start)

	if strings.TrimSpace(req.WorkspaceRoot) == "" {
		a.logger.Error("Analysis requested without a workspace root")
		return &Report{Status: StatusError, Message: "workspace_root must not be empty"}
	}

	scope := fileops.NormalizeDiffPath(req.Path)
	a.logger.Info("Analyzing code quality", "workspace", req.WorkspaceRoot, "path", scope)

	diffs := a.source.CollectDiffs(ctx, req.WorkspaceRoot, scope)
	combined := diffs.Combined()
	if combined == "" {
		return &Report{Status: StatusNoChanges, Message: "No changes detected in the git diff"}
	}

	changes := diff.Parse(combined)
	if len(changes) == 0 {
		return &Report{Status: StatusNoChanges, Message: "No parseable changes detected in the git diff"}
	}

	results := make(map[string]FileResult)
	for _, path := range sortedPaths(changes) {
		change := changes[path]

		if a.isNoise(path) {
			a.logger.Debug("Skipping noise file", "path", path)
			continue
		}

		original, modified := diff.ExtractCode(change)
		if len(strings.TrimSpace(modified)) < minChangeChars {
			a.logger.Debug("Skipping file with negligible modified code", "path", path)
			continue
		}

		result, err := a.analyzeFile(change, original, modified, req.FocusAreas)
		if err != nil {
			a.logger.Error("Error analyzing file", "path", path, "error", err)
			results[path] = FileResult{
				Status:  "error",
				Message: fmt.Sprintf("Error analyzing file: %s", err),
			}
			continue
		}
		results[path] = result
	}

	return &Report{
		Status:       StatusSuccess,
		FileCount:    len(results),
		Results:      results,
		Instructions: Instructions,
	}
}

// analyzeFile builds the successful per-file result. The path check guards
// against crafted diff output smuggling traversal sequences to callers that
// feed result keys back into filesystem operations.
func (a *Analyzer) analyzeFile(change *diff.FileChange, original, modified string, focus []string) (FileResult, error) {
	if err := fileops.ValidatePathSecurity(change.Path); err != nil {
		return FileResult{}, fmt.Errorf("unsafe path in diff: %w", err)
	}

	lang := language.Detect(change.Path)
	promptText := a.library.Generate(modified, lang, original, focus)

	return FileResult{
		Status:         string(change.Status),
		Language:       lang,
		AnalysisPrompt: promptText,
	}, nil
}

func (a *Analyzer) isNoise(path string) bool {
	for _, suffix := range a.skip {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func sortedPaths(changes map[string]*diff.FileChange) []string {
	paths := make([]string, 0, len(changes))
	for path := range changes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
