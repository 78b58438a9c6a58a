package repository

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
)

// DiffText carries the raw pending changes of a workspace, split by
// staging state. Either side may be empty.
type DiffText struct {
	Unstaged string
	Staged   string
}

// Empty reports whether neither side holds any diff output.
func (d DiffText) Empty() bool {
	return d.Unstaged == "" && d.Staged == ""
}

// Combined joins both sides with a separating newline. When only one side
// has content it is returned alone.
func (d DiffText) Combined() string {
	switch {
	case d.Unstaged == "":
		return d.Staged
	case d.Staged == "":
		return d.Unstaged
	default:
		return d.Unstaged + "\n" + d.Staged
	}
}

// Collector gathers pending changes from a git workspace by shelling out
// to the git binary. Every subprocess receives an explicit working
// directory; the collector never changes the process working directory.
type Collector struct {
	logger *logging.AppLogger
}

// NewCollector returns a Collector that reports failures to logger.
func NewCollector(logger *logging.AppLogger) *Collector {
	return &Collector{logger: logger}
}

// CollectDiffs returns the unstaged and staged diffs of the workspace at
// root, optionally scoped to path. Acquisition failures degrade: the failed
// side comes back empty and the cause is logged, so a workspace without
// version control simply yields no changes.
func (c *Collector) CollectDiffs(ctx context.Context, root, path string) DiffText {
	if strings.TrimSpace(root) == "" {
		c.logger.Error("Diff collection requires a workspace root")
		return DiffText{}
	}

	toplevel, err := c.resolveToplevel(ctx, root)
	if err != nil {
		c.logger.Error("Workspace is not a git repository", "root", root, "error", err)
		return DiffText{}
	}
	c.logger.Debug("Resolved workspace toplevel", "root", root, "toplevel", toplevel)

	var diffs DiffText

	unstaged, err := c.diff(ctx, toplevel, false, path)
	if err != nil {
		c.logger.Error("Failed to collect unstaged diff", "toplevel", toplevel, "error", err)
	} else {
		diffs.Unstaged = unstaged
	}

	staged, err := c.diff(ctx, toplevel, true, path)
	if err != nil {
		c.logger.Error("Failed to collect staged diff", "toplevel", toplevel, "error", err)
	} else {
		diffs.Staged = staged
	}

	return diffs
}

// resolveToplevel asks git for the repository root containing dir.
func (c *Collector) resolveToplevel(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Collector) diff(ctx context.Context, dir string, staged bool, path string) (string, error) {
	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	if path != "" {
		args = append(args, "--", path)
	}
	return c.run(ctx, dir, args...)
}

// run executes git with the given working directory and returns stdout.
// On failure the stderr tail is folded into the error.
func (c *Collector) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s: %w",
				strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return string(out), nil
}
