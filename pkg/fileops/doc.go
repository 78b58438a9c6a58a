// Package fileops provides path and file validation helpers with
// defense-in-depth patterns.
//
// This package guards the two untrusted inputs the server accepts from the
// outside: file paths supplied as tool arguments, and user-authored
// dimension files read from disk.
//
// # Validation Patterns
//
// For tool-supplied paths, combine the helpers in this order:
//
// 1. **Normalization**: NormalizeDiffPath() - Unifies path separators across platforms
// 2. **Path Security**: ValidatePathSecurity() - Prevents path traversal attacks
//
// For user-authored files read from disk:
//
// 1. **File Size**: ValidateFileSizeLimit() - Prevents resource exhaustion
//
// # Example: Scoping Path Validation
//
//	scope := fileops.NormalizeDiffPath(rawPath)
//	if err := fileops.ValidatePathSecurity(scope); err != nil {
//	    return fmt.Errorf("path security: %w", err)
//	}
//
// ExpandPath() resolves "~/" shortcuts in paths typed by humans on the
// command line; protocol clients are expected to send resolved paths.
package fileops
