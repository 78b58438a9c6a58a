package repository

import (
	"errors"
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v6"
)

// ErrNotAWorkspace reports that a directory is not inside a git working tree.
var ErrNotAWorkspace = errors.New("not inside a git workspace")

// FileStatus describes one changed file as seen by git status.
type FileStatus struct {
	Path     string `json:"path"`
	Staging  string `json:"staging"`
	Worktree string `json:"worktree"`
}

// WorkspaceStatus summarizes the pending state of a workspace.
type WorkspaceStatus struct {
	Root  string       `json:"root"`
	Clean bool         `json:"clean"`
	Files []FileStatus `json:"files"`
}

// DetectWorkspace resolves the working-tree root containing dir. The .git
// directory may live in dir itself or any parent.
func DetectWorkspace(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotAWorkspace, dir)
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to access working tree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// InspectWorkspace reports the working-tree root of the workspace
// containing dir along with the staging/worktree state of every pending
// file. Files come back sorted by path so output is deterministic.
func InspectWorkspace(dir string) (*WorkspaceStatus, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotAWorkspace, dir)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to access working tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	result := &WorkspaceStatus{
		Root:  worktree.Filesystem.Root(),
		Clean: status.IsClean(),
	}

	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		result.Files = append(result.Files, FileStatus{
			Path:     path,
			Staging:  statusLabel(fileStatus.Staging),
			Worktree: statusLabel(fileStatus.Worktree),
		})
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	return result, nil
}

// statusLabel translates go-git status codes into the words clients see.
func statusLabel(code git.StatusCode) string {
	switch code {
	case git.Unmodified:
		return "unmodified"
	case git.Untracked:
		return "untracked"
	case git.Modified:
		return "modified"
	case git.Added:
		return "added"
	case git.Deleted:
		return "deleted"
	case git.Renamed:
		return "renamed"
	case git.Copied:
		return "copied"
	case git.UpdatedButUnmerged:
		return "unmerged"
	default:
		return "unknown"
	}
}
