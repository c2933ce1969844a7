package domain

import "time"

const (
	// ConfigFileName is the name of the configuration file, discovered by
	// upward search from the working directory.
	ConfigFileName = "psync.yaml"

	// EnvFileName is the name of the optional dotenv file loaded before the
	// config file is expanded.
	EnvFileName = ".env"

	// DefaultProjectGlob matches the manifests psync manages by default.
	DefaultProjectGlob = "*.csproj"

	// DefaultDebounce is the watch mode event coalescing window.
	DefaultDebounce = 250 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
