package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectNotFound is returned when no project manifest exists between
	// the starting directory and the filesystem root.
	ErrProjectNotFound = zerr.New("no project file found")

	// ErrItemNotFound is returned when a removal or rename targets an item
	// that is not present in the manifest.
	ErrItemNotFound = zerr.New("item not found in project")

	// ErrItemNotTracked is returned by the check operation when the queried
	// path is not part of the manifest. The CLI maps it to a non-zero exit
	// without logging it as a failure.
	ErrItemNotTracked = zerr.New("item not tracked")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read project file")

	// ErrManifestParseFailed is returned when the manifest content is not a
	// well-formed project document.
	ErrManifestParseFailed = zerr.New("failed to parse project file")

	// ErrManifestWriteFailed is returned when the manifest cannot be
	// serialized or written back to disk.
	ErrManifestWriteFailed = zerr.New("failed to write project file")

	// ErrPathOutsideProject is returned when a source path cannot be made
	// relative to the manifest's directory.
	ErrPathOutsideProject = zerr.New("path is outside the project directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigExists is returned by init when a config file already exists
	// at the target location.
	ErrConfigExists = zerr.New("config file already exists")

	// ErrInvalidPattern is returned when the configured project file pattern
	// is not a valid glob or spans directories.
	ErrInvalidPattern = zerr.New("invalid project file pattern")

	// ErrWatchFailed is returned when the filesystem watcher cannot be
	// started on the requested root.
	ErrWatchFailed = zerr.New("failed to watch directory")
)
