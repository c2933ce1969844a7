package ports

import "go.trai.ch/psync/internal/core/domain"

// ConfigLoader defines the interface for loading the psync configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds and reads the configuration starting from the given working
	// directory. A missing config file yields the defaults, not an error.
	Load(cwd string) (*domain.Config, error)

	// Discover walks up from cwd and returns the path of the nearest config
	// file, or an empty string when none exists up to the filesystem root.
	Discover(cwd string) (string, error)

	// Init writes a starter config file into dir and returns its path. It
	// returns domain.ErrConfigExists when the directory already has one.
	Init(dir string) (string, error)
}
