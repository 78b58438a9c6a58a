package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperb1iss/lucidity-mcp/internal/logging"
	"github.com/hyperb1iss/lucidity-mcp/pkg/fileops"

	"github.com/adrg/frontmatter"
)

// MaxDimensionFileSize caps custom dimension files. Anything larger is
// rejected before parsing.
const MaxDimensionFileSize int64 = 256 * 1024

// dimensionKeyPattern constrains custom keys to the same shape as the
// built-in ones so focus_areas values stay unambiguous.
var dimensionKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DimensionFrontmatter is the YAML frontmatter expected in a custom
// dimension file.
type DimensionFrontmatter struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
}

// LoadCustomDir scans dir for markdown dimension files and registers the
// valid ones with the library. Each file carries YAML frontmatter with a
// `key` and `title`; the body becomes the dimension's bullet list. Invalid
// files are logged and skipped. A missing directory is not an error: custom
// dimensions are optional.
func (l *Library) LoadCustomDir(dir string, logger *logging.AppLogger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No custom dimensions directory", "dir", dir)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read dimensions directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := l.loadCustomFile(path); err != nil {
			logger.Warn("Skipping custom dimension file", "file", entry.Name(), "reason", err)
			continue
		}
		logger.Debug("Loaded custom dimension", "file", entry.Name())
		loaded++
	}

	if loaded > 0 {
		logger.Info("Custom dimensions loaded", "dir", dir, "count", loaded)
	}
	return loaded, nil
}

func (l *Library) loadCustomFile(path string) error {
	if err := fileops.ValidateFileSizeLimit(path, MaxDimensionFileSize); err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var matter DimensionFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return fmt.Errorf("invalid frontmatter: %w", err)
	}

	key := strings.TrimSpace(matter.Key)
	title := strings.TrimSpace(matter.Title)
	description := strings.TrimSpace(string(body))

	switch {
	case key == "":
		return fmt.Errorf("frontmatter is missing a key")
	case !dimensionKeyPattern.MatchString(key):
		return fmt.Errorf("key %q must match %s", key, dimensionKeyPattern)
	case l.Has(key):
		return fmt.Errorf("key %q is already defined", key)
	case title == "":
		return fmt.Errorf("frontmatter is missing a title")
	case description == "":
		return fmt.Errorf("file has no description body")
	}

	l.add(key, fmt.Sprintf("**%s**\n%s", title, description))
	return nil
}
