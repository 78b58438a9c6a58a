// Package diff splits combined unified-diff text into per-file change
// records and recovers original/modified code bodies from them.
//
// The input is whatever `git diff` printed: one `diff --git a/<path> b/<path>`
// header per file, metadata lines (index, mode, file-path annotations) up to
// the first `@@` hunk marker, then prefixed hunk lines. Parsing never
// returns an error: malformed headers are skipped and binary diffs produce
// records with no content.
package diff

import "strings"

// Status classifies the kind of change a file underwent.
type Status string

const (
	StatusModified Status = "modified"
	StatusAdded    Status = "added"
	StatusDeleted  Status = "deleted"
	StatusRenamed  Status = "renamed"
)

// FileChange is one file's slice of a diff: the kind of change plus the
// raw prefixed hunk lines in input order.
type FileChange struct {
	Path   string
	Status Status
	Lines  []string
}

// Content joins the accumulated hunk lines, prefixes intact.
func (fc *FileChange) Content() string {
	return strings.Join(fc.Lines, "\n")
}

const headerPrefix = "diff --git"

// Parse splits unified-diff text into records keyed by file path. The path
// comes from the header's third space-separated token with its "a/" segment
// stripped; a header too short to carry one is skipped and any lines that
// follow it are dropped until the next well-formed header. Metadata between
// the header and the first hunk marker may override the default "modified"
// status. Empty or header-free input yields an empty map.
func Parse(text string) map[string]*FileChange {
	changes := make(map[string]*FileChange)
	if strings.TrimSpace(text) == "" {
		return changes
	}

	var current *FileChange
	inPreamble := false

	flush := func() {
		if current != nil {
			changes[current.Path] = current
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, headerPrefix) {
			flush()
			parts := strings.Split(line, " ")
			if len(parts) >= 3 && len(parts[2]) > 2 {
				current = &FileChange{
					Path:   parts[2][2:],
					Status: StatusModified,
				}
				inPreamble = true
			} else {
				inPreamble = false
			}
			continue
		}

		if current == nil {
			continue
		}

		if inPreamble {
			switch {
			case strings.HasPrefix(line, "@@"):
				inPreamble = false
			case strings.HasPrefix(line, "new file"):
				current.Status = StatusAdded
			case strings.HasPrefix(line, "deleted file"):
				current.Status = StatusDeleted
			case strings.HasPrefix(line, "rename from"):
				current.Status = StatusRenamed
			}
			continue
		}

		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, " ") {
			current.Lines = append(current.Lines, line)
		}
	}
	flush()

	return changes
}

// ExtractCode rebuilds the original and modified code bodies from a change.
// Added lines (+) land in modified, removed lines (-) in original, context
// lines in both. The file-path annotations +++/--- are never code and are
// excluded; a plain prefix check would misread them.
func ExtractCode(change *FileChange) (original, modified string) {
	var originalLines, modifiedLines []string

	for _, line := range change.Lines {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			modifiedLines = append(modifiedLines, line[1:])
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			originalLines = append(originalLines, line[1:])
		case strings.HasPrefix(line, " "):
			originalLines = append(originalLines, line[1:])
			modifiedLines = append(modifiedLines, line[1:])
		}
	}

	return strings.Join(originalLines, "\n"), strings.Join(modifiedLines, "\n")
}
