package fileops

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ValidatePathSecurity performs security validation on a file path supplied
// by an external caller. This function checks for common path traversal
// attacks and dangerous path patterns.
//
// The function validates:
//   - Path traversal attempts using ".." sequences
//   - Empty or whitespace-only paths
//   - Paths that resolve outside expected boundaries after cleaning
//
// Parameters:
//   - path: The file path to validate
//
// Returns:
//   - error: Validation errors if the path is considered unsafe
//
// Security considerations:
//   - This function performs static analysis and does not access the filesystem
//   - Symlink resolution should be performed separately if needed
//
// Usage example:
//
//	if err := fileops.ValidatePathSecurity("../../etc/passwd"); err != nil {
//	    log.Printf("Unsafe path detected: %v", err)
//	    return err
//	}
func ValidatePathSecurity(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check for path traversal in raw input
	if strings.Contains(p, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// Clean and re-check for traversal
	cleanPath := filepath.Clean(p)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	return nil
}

// NormalizeDiffPath unifies the separators of a repository-relative path so
// the same input works against git regardless of the client's platform.
// Backslash-separated input from Windows clients becomes slash-separated,
// and redundant segments are collapsed.
//
// Parameters:
//   - p: The repository-relative path to normalize
//
// Returns:
//   - string: The normalized path, or "" for empty input
//
// Usage example:
//
//	scope := fileops.NormalizeDiffPath("src\\pkg\\file.go")
//	// Returns "src/pkg/file.go"
func NormalizeDiffPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// ExpandPath expands a path that starts with "~/" to the user's home directory.
// This is a utility function for handling user home directory shortcuts.
//
// Parameters:
//   - path: The path to expand, which may start with "~/"
//
// Returns:
//   - string: The expanded path, or the original path if it doesn't start with "~/"
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/Documents/file.txt")
//	// Returns something like "/home/user/Documents/file.txt"
func ExpandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// ValidateFileSizeLimit checks if a file size is within acceptable limits.
// This function helps prevent memory exhaustion from very large files.
//
// Parameters:
//   - filePath: Path to the file to check
//   - maxSize: Maximum allowed file size in bytes
//
// Returns:
//   - error: Validation error if file exceeds size limit or cannot be accessed
//
// The function:
//   - Checks file existence and accessibility
//   - Compares file size against the specified limit
//   - Returns descriptive errors for different failure modes
//
// Usage example:
//
//	// Limit files to 10MB
//	if err := fileops.ValidateFileSizeLimit("/path/to/file.txt", 10*1024*1024); err != nil {
//	    return fmt.Errorf("file too large: %w", err)
//	}
func ValidateFileSizeLimit(filePath string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filepath.Base(filePath))
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if fileInfo.Size() > maxSize {
		return fmt.Errorf("file size %d bytes exceeds limit %d bytes", fileInfo.Size(), maxSize)
	}

	return nil
}
