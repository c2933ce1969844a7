// Package config provides the configuration loader for psync.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file discovered by
// upward search from the working directory.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration governing cwd. A missing config file yields
// the defaults. A .env file next to the config file (or in cwd when no
// config exists) is loaded first, and environment references in the config
// are expanded before parsing.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := l.Discover(cwd)
	if err != nil {
		return nil, err
	}

	if configPath == "" {
		l.loadEnv(cwd)
		return domain.DefaultConfig(), nil
	}

	l.loadEnv(filepath.Dir(configPath))

	// #nosec G304 -- configPath is discovered relative to the working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg, err := file.apply(domain.DefaultConfig())
	if err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return cfg, nil
}

// Discover walks up from cwd and returns the path of the nearest config
// file, or an empty string when none exists up to the filesystem root.
func (l *Loader) Discover(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	currentDir := abs
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", nil
}

// Init writes a starter config file into dir and returns its path.
func (l *Loader) Init(dir string) (string, error) {
	path := filepath.Join(dir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", zerr.With(domain.ErrConfigExists, "path", path)
	}

	// #nosec G306 -- config file is meant to be world-readable
	if err := os.WriteFile(path, []byte(configTemplate), domain.FilePerm); err != nil {
		return "", zerr.Wrap(err, "failed to write config file")
	}
	return path, nil
}

// loadEnv loads the .env file in dir, if present. Existing process
// variables are never overwritten.
func (l *Loader) loadEnv(dir string) {
	path := filepath.Join(dir, domain.EnvFileName)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		l.Logger.Warn("failed to load " + path)
	}
}
