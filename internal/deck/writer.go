package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/raunakm/stepdeck/internal/pptx"
)

var (
	punctRe = regexp.MustCompile(`[,()]`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// SanitizeFilename makes a subject string safe for a filename:
// lower-cased, commas and parentheses stripped, whitespace runs
// collapsed to single underscores.
func SanitizeFilename(subject string) string {
	s := strings.ToLower(subject)
	s = punctRe.ReplaceAllString(s, "")
	s = wsRe.ReplaceAllString(strings.TrimSpace(s), "_")
	return s
}

// Filename returns the deck filename for a subject.
func Filename(subject string) string {
	return SanitizeFilename(subject) + ".pptx"
}

// Save writes the presentation to <dir>/<sanitized subject>.pptx and
// returns the final path. The file lands via temp-file-then-rename so a
// crash mid-write cannot leave a torn deck.
func Save(dir, subject string, prs *pptx.Presentation) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	final := filepath.Join(dir, Filename(subject))

	tmp, err := os.CreateTemp(dir, ".stepdeck-*.pptx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := prs.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename deck into place: %w", err)
	}

	return final, nil
}
