package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds the effective psync configuration after defaults have been
// applied.
type Config struct {
	// ProjectGlob is the file name pattern used by the upward search for the
	// nearest project manifest. It must not span directories.
	ProjectGlob string

	// ItemKinds maps a file extension (with leading dot, lowercase) to the
	// item kind used when adding files of that extension. Extensions without
	// a mapping are never synced.
	ItemKinds map[string]string

	// ExcludeDirs lists directory names that are never walked or watched.
	ExcludeDirs []string

	// Watch holds settings for continuous sync mode.
	Watch WatchConfig
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	// Debounce is the window during which filesystem events are coalesced
	// into one batch.
	Debounce time.Duration
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ProjectGlob: DefaultProjectGlob,
		ItemKinds: map[string]string{
			".cs":     "Compile",
			".vb":     "Compile",
			".resx":   "EmbeddedResource",
			".config": "None",
			".json":   "Content",
			".xml":    "Content",
		},
		ExcludeDirs: []string{".git", ".vs", "bin", "obj", "node_modules"},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// KindFor returns the item kind for the given path's extension. The second
// return value is false when the extension has no mapping.
func (c *Config) KindFor(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	kind, ok := c.ItemKinds[ext]
	return kind, ok
}

// Excluded reports whether the given directory name is excluded.
func (c *Config) Excluded(name string) bool {
	for _, dir := range c.ExcludeDirs {
		if name == dir {
			return true
		}
	}
	return false
}
