// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: openrouter-api-key (Perplexity via OpenRouter) and
// semantic-scholar-api-key (optional, raises the Semantic Scholar rate limit).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Store maps secret names to their trimmed values.
type Store map[string]string

// Load reads all files in dir and returns them keyed by filename.
// A missing directory or missing files are not errors; Load returns an empty Store.
// Unreadable files are logged at warn level and skipped.
func Load(dir string, logger zerolog.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Resolve returns configured when set, else the environment variable env,
// else the secret called name.
func (s Store) Resolve(configured, env, name string) string {
	if configured != "" {
		return configured
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return s[name]
}

// Names returns the loaded secret names, sorted. Values are never exposed
// so the result is safe to log.
func (s Store) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
