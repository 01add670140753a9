// Config loading for the registry CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/NSC-Rick/stjregistry/internal/paths"
	"github.com/NSC-Rick/stjregistry/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeySchemaFile = "schema_file"
	cfgKeyCacheTTL   = "cache_ttl_seconds"

	defaultBackend  = types.BackendSQLite
	defaultCacheTTL = 60
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Registry CLI configuration

# Record store backend: sqlite (local) or postgres (hosted registry,
# DATABASE_URL from the environment or .env)
backend: sqlite

# SQLite data directory (optional; overridable by --data-dir flag)
# data_dir:

# Extra or overriding entity schemas (optional)
# schema_file:

# Freshness window of the load cache, in seconds
cache_ttl_seconds: 60
`

// appConfig holds the settings every subcommand needs.
type appConfig struct {
	Backend    string
	DataDir    string
	SchemaFile string
	CacheTTL   time.Duration
}

// loadConfig reads config.yaml from the config directory using Viper,
// creating the directory and a default config.yaml on first run. A
// missing config.yaml is not an error.
func loadConfig(configDir string) (appConfig, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return appConfig{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return appConfig{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyCacheTTL, defaultCacheTTL)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return appConfig{
		Backend:    v.GetString(cfgKeyBackend),
		DataDir:    v.GetString(cfgKeyDataDir),
		SchemaFile: v.GetString(cfgKeySchemaFile),
		CacheTTL:   time.Duration(v.GetInt(cfgKeyCacheTTL)) * time.Second,
	}, nil
}

// resolveConfigDir returns the configuration directory following the
// precedence chain flag > REGISTRY_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the sqlite data directory following the
// precedence chain flag > config.yaml > REGISTRY_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
