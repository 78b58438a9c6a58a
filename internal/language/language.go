// Package language maps file names to the language labels used to tag
// fenced code blocks in analysis prompts.
package language

import (
	"path/filepath"
	"strings"
)

// Fallback is the label applied when the extension is unknown or missing.
const Fallback = "text"

// extensionLabels is the closed lookup table from lowercased extension to
// label. It is never mutated after initialization.
var extensionLabels = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "jsx",
	".tsx":   "tsx",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".go":    "go",
	".rs":    "rust",
	".php":   "php",
	".rb":    "ruby",
	".swift": "swift",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".sh":    "bash",
	".md":    "markdown",
	".json":  "json",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
}

// Detect returns the language label for a file name or path. It never
// fails: unrecognized extensions fall back to "text".
func Detect(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if label, ok := extensionLabels[ext]; ok {
		return label
	}
	return Fallback
}
