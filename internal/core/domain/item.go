// Package domain contains the core types of psync: project references,
// manifest items, and configuration.
package domain

import (
	"path/filepath"
	"strings"
)

// Item is a single file reference inside a project manifest. Kind is the
// element name inside an ItemGroup (Compile, EmbeddedResource, Content, ...)
// and Include is the file path relative to the manifest's directory, in
// manifest convention (backslash separators).
type Item struct {
	Kind    string
	Include string
}

// Matches reports whether the item refers to the given include path.
// Comparison follows MSBuild-on-Windows semantics: case-insensitive and
// separator-insensitive, since these manifests originate on a filesystem
// where Foo.cs and foo.cs are the same file.
func (i Item) Matches(include string) bool {
	return CanonicalInclude(i.Include) == CanonicalInclude(include)
}

// ToInclude converts a relative filesystem path to manifest include form,
// replacing forward slashes with backslashes.
func ToInclude(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}

// FromInclude converts a manifest include path back to the host's
// filesystem separator convention.
func FromInclude(include string) string {
	return filepath.FromSlash(strings.ReplaceAll(include, `\`, "/"))
}

// CanonicalInclude normalizes an include path for comparison: separators
// become backslashes and the result is lowercased.
func CanonicalInclude(include string) string {
	return strings.ToLower(ToInclude(include))
}
