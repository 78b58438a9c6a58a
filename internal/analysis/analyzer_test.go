package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
	"github.com/hyperb1iss/lucidity-mcp/internal/prompt"
	"github.com/hyperb1iss/lucidity-mcp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource feeds canned diff text into the analyzer and records how it
// was called.
type stubSource struct {
	diffs repository.DiffText
	calls int
	root  string
	path  string
}

func (s *stubSource) CollectDiffs(_ context.Context, root, path string) repository.DiffText {
	s.calls++
	s.root = root
	s.path = path
	return s.diffs
}

func newTestAnalyzer(source DiffSource, extra ...string) *Analyzer {
	logger, _ := logging.NewTestLogger()
	return NewAnalyzer(source, prompt.NewLibrary(), logger, extra...)
}

// fileDiff renders a minimal one-file unified diff.
func fileDiff(path string, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "index 1111111..2222222 100644\n")
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	b.WriteString("@@ -1,1 +1,2 @@\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func TestAnalyzeCodeQuality_EmptyWorkspaceRoot(t *testing.T) {
	source := &stubSource{}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "  "})

	assert.Equal(t, StatusError, report.Status)
	assert.Contains(t, report.Message, "workspace_root")
	assert.Zero(t, source.calls, "no acquisition may happen without a workspace root")
}

func TestAnalyzeCodeQuality_NoChanges(t *testing.T) {
	source := &stubSource{}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, StatusNoChanges, report.Status)
	assert.Equal(t, "No changes detected in the git diff", report.Message)
	assert.Zero(t, report.FileCount)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Instructions)
}

func TestAnalyzeCodeQuality_UnparseableDiff(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{Unstaged: "garbage without any headers\n+stray"}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, StatusNoChanges, report.Status)
	assert.Equal(t, "No parseable changes detected in the git diff", report.Message)
}

func TestAnalyzeCodeQuality_SingleFile(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("x.py", " print(1)", "+print(2)"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	require.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, 1, report.FileCount)
	require.Contains(t, report.Results, "x.py")

	result := report.Results["x.py"]
	assert.Equal(t, "modified", result.Status)
	assert.Equal(t, "python", result.Language)
	assert.Contains(t, result.AnalysisPrompt, "```python\nprint(1)\nprint(2)\n```")
	assert.Contains(t, result.AnalysisPrompt, "## Original Code (for comparison)")
	assert.Contains(t, result.AnalysisPrompt, "```python\nprint(1)\n```")
	assert.Empty(t, result.Message)
}

func TestAnalyzeCodeQuality_AddedFileHasNoComparisonSection(t *testing.T) {
	text := "diff --git a/fresh.go b/fresh.go\n" +
		"new file mode 100644\n" +
		"--- /dev/null\n" +
		"+++ b/fresh.go\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+package fresh\n" +
		"+func New() {}\n"
	source := &stubSource{diffs: repository.DiffText{Unstaged: text}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	require.Contains(t, report.Results, "fresh.go")
	result := report.Results["fresh.go"]
	assert.Equal(t, "added", result.Status)
	assert.NotContains(t, result.AnalysisPrompt, "## Original Code (for comparison)",
		"a brand-new file has nothing to compare against")
}

func TestAnalyzeCodeQuality_SkipsNoiseFiles(t *testing.T) {
	diffs := fileDiff("yarn.lock", "+\"dep\": \"1.2.3\" resolved") +
		fileDiff("go.sum", "+github.com/x/y v1.0.0 h1:abcdef") +
		fileDiff("Cargo.lock", "+name = \"serde\" version = \"1\"") +
		fileDiff("package-lock.json", "+\"lockfileVersion\": 3,") +
		fileDiff("app.py", "+def handler(event):", "+    return process(event)")

	source := &stubSource{diffs: repository.DiffText{Unstaged: diffs}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	require.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, 1, report.FileCount)
	assert.Contains(t, report.Results, "app.py")
	assert.NotContains(t, report.Results, "yarn.lock")
	assert.NotContains(t, report.Results, "go.sum")
	assert.NotContains(t, report.Results, "Cargo.lock")
	assert.NotContains(t, report.Results, "package-lock.json")
}

func TestAnalyzeCodeQuality_ExtraSkipSuffixes(t *testing.T) {
	diffs := fileDiff("api.generated.go", "+func GeneratedHandler() error { return nil }") +
		fileDiff("api.go", "+func Handler() error { return checkAll() }")

	source := &stubSource{diffs: repository.DiffText{Unstaged: diffs}}
	analyzer := newTestAnalyzer(source, ".generated.go")

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Contains(t, report.Results, "api.go")
	assert.NotContains(t, report.Results, "api.generated.go")
}

func TestAnalyzeCodeQuality_SkipsTinyChanges(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("tiny.py", "+x = 1"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, StatusSuccess, report.Status,
		"filtering everything out still succeeds, with zero files")
	assert.Zero(t, report.FileCount)
	assert.NotContains(t, report.Results, "tiny.py")
}

func TestAnalyzeCodeQuality_DeletedFileSkipped(t *testing.T) {
	text := "diff --git a/legacy.py b/legacy.py\n" +
		"deleted file mode 100644\n" +
		"--- a/legacy.py\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-def old():\n" +
		"-    pass\n"
	source := &stubSource{diffs: repository.DiffText{Unstaged: text}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, StatusSuccess, report.Status)
	assert.Zero(t, report.FileCount, "a pure deletion leaves no modified code to analyze")
}

func TestAnalyzeCodeQuality_PerFileErrorIsolation(t *testing.T) {
	diffs := fileDiff("../escape.py", "+import os; os.system('boom')") +
		fileDiff("good.py", "+def fine():", "+    return 42")

	source := &stubSource{diffs: repository.DiffText{Unstaged: diffs}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	require.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, 2, report.FileCount)

	bad, ok := report.Results["../escape.py"]
	require.True(t, ok, "the failing file must still appear, tagged as an error")
	assert.Equal(t, "error", bad.Status)
	assert.Contains(t, bad.Message, "Error analyzing file")
	assert.Contains(t, bad.Message, "unsafe path")
	assert.Empty(t, bad.AnalysisPrompt)

	good, ok := report.Results["good.py"]
	require.True(t, ok, "siblings must be unaffected by one file's failure")
	assert.Equal(t, "modified", good.Status)
	assert.NotEmpty(t, good.AnalysisPrompt)
}

func TestAnalyzeCodeQuality_FocusAreas(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("auth.go", "+token := req.Header.Get(\"X-Token\")"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{
		WorkspaceRoot: "/repo",
		FocusAreas:    []string{"security"},
	})

	require.Contains(t, report.Results, "auth.go")
	promptText := report.Results["auth.go"].AnalysisPrompt
	assert.Contains(t, promptText, "**Security Vulnerabilities**")
	assert.NotContains(t, promptText, "**Unnecessary Complexity**")
}

func TestAnalyzeCodeQuality_UnknownFocusAreaStillSucceeds(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("app.go", "+func main() { run() }"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{
		WorkspaceRoot: "/repo",
		FocusAreas:    []string{"nonexistent_dimension"},
	})

	assert.Equal(t, StatusSuccess, report.Status)
	require.Contains(t, report.Results, "app.go")
}

func TestAnalyzeCodeQuality_ScopePathNormalized(t *testing.T) {
	source := &stubSource{}
	analyzer := newTestAnalyzer(source)

	analyzer.AnalyzeCodeQuality(context.Background(), Request{
		WorkspaceRoot: "/repo",
		Path:          "src\\pkg\\file.go",
	})

	assert.Equal(t, "src/pkg/file.go", source.path)
	assert.Equal(t, "/repo", source.root)
}

func TestAnalyzeCodeQuality_CombinesBothStreams(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("worktree.py", "+print('unstaged change')"),
		Staged:   fileDiff("index.py", "+print('staged change')"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, 2, report.FileCount)
	assert.Contains(t, report.Results, "worktree.py")
	assert.Contains(t, report.Results, "index.py")
}

func TestAnalyzeCodeQuality_InstructionsAttached(t *testing.T) {
	source := &stubSource{diffs: repository.DiffText{
		Unstaged: fileDiff("app.go", "+func main() { run() }"),
	}}
	analyzer := newTestAnalyzer(source)

	report := analyzer.AnalyzeCodeQuality(context.Background(), Request{WorkspaceRoot: "/repo"})

	assert.Equal(t, Instructions, report.Instructions)
}
