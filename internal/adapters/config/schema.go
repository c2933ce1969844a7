package config

import (
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/zerr"
)

// File represents the structure of the psync.yaml configuration file.
// Absent fields keep their defaults.
type File struct {
	Project string            `yaml:"project"`
	Items   map[string]string `yaml:"items"`
	Exclude []string          `yaml:"exclude"`
	Watch   WatchDTO          `yaml:"watch"`
}

// WatchDTO represents the watch settings in the configuration.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}

// apply overlays the file onto cfg and validates the result. An items map in
// the file replaces the default map wholesale, so users can unmap default
// extensions.
func (f *File) apply(cfg *domain.Config) (*domain.Config, error) {
	if f.Project != "" {
		if err := validateGlob(f.Project); err != nil {
			return nil, err
		}
		cfg.ProjectGlob = f.Project
	}

	if len(f.Items) > 0 {
		kinds := make(map[string]string, len(f.Items))
		for ext, kind := range f.Items {
			kinds[normalizeExt(ext)] = kind
		}
		cfg.ItemKinds = kinds
	}

	if len(f.Exclude) > 0 {
		cfg.ExcludeDirs = f.Exclude
	}

	if f.Watch.Debounce != "" {
		d, err := time.ParseDuration(f.Watch.Debounce)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "debounce", f.Watch.Debounce)
		}
		cfg.Watch.Debounce = d
	}

	return cfg, nil
}

// validateGlob rejects patterns that span directories or are malformed.
func validateGlob(pattern string) error {
	if strings.ContainsAny(pattern, `/\`) {
		return zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", pattern)
	}
	return nil
}

// normalizeExt lowercases the extension and ensures a leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// configTemplate is the starter psync.yaml written by init. It spells out
// the built-in defaults so users have something concrete to edit.
const configTemplate = `# psync configuration
#
# Pattern for the project file found by upward search from each source file.
project: "*.csproj"

# File extensions and the item kind they sync as. Files with extensions not
# listed here are ignored. This map replaces the defaults entirely.
items:
  .cs: Compile
  .vb: Compile
  .resx: EmbeddedResource
  .config: None
  .json: Content
  .xml: Content

# Directory names that are never walked or watched.
exclude:
  - .git
  - .vs
  - bin
  - obj
  - node_modules

watch:
  # Window during which filesystem events are coalesced into one batch.
  debounce: 250ms
`
