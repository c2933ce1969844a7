package domain

import (
	"path/filepath"
	"strings"
)

// ProjectRef identifies a project manifest on disk. Path is absolute; Name
// is the display name (file name without extension). The parsed document
// belongs to the manifest store and is looked up by Path.
type ProjectRef struct {
	Path string
	Name string
}

// NewProjectRef creates a ProjectRef for the manifest at the given path.
func NewProjectRef(path string) ProjectRef {
	base := filepath.Base(path)
	return ProjectRef{
		Path: path,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Dir returns the directory containing the manifest. Includes are resolved
// relative to it.
func (p ProjectRef) Dir() string {
	return filepath.Dir(p.Path)
}
