// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatForPath picks an output format from a file extension. Unknown
// extensions fall back to JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatNameYAML
	case ".txt":
		return FormatNameTable
	default:
		return FormatNameJSON
	}
}

// WriteResultFile saves an envelope to path so a search can be reviewed
// later without re-querying the APIs. An empty format is derived from the
// path extension.
func WriteResultFile(path, format string, v any) error {
	if format == "" {
		format = FormatForPath(path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	if err := Format(format, v, f); err != nil {
		f.Close()
		return fmt.Errorf("writing result file: %w", err)
	}
	return f.Close()
}
