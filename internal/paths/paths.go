// Package paths resolves configuration and data directory locations
// for the registry CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative data directory name used by the sqlite backend when no
// override is active.
const DefaultDataDirName = ".stjregistry-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "REGISTRY_CONFIG_DIR"
	EnvDataDir   = "REGISTRY_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stjregistry (fallback ~/.config/stjregistry)
// macOS:   ~/Library/Application Support/stjregistry
// Windows: %APPDATA%/stjregistry
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "stjregistry"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "stjregistry"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "stjregistry"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > REGISTRY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the sqlite data directory following the
// precedence chain: flag > config.yaml value > REGISTRY_DATA_DIR env >
// $(CWD)/.stjregistry-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
