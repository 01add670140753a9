// Package secrets loads store credentials and the shared access
// password from a .env file or the environment. Secrets never live in
// config.yaml.
package secrets

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

// Environment variable names.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvAppPassword = "APP_PASSWORD"
	EnvPassword    = "REGISTRY_PASSWORD"
)

// Load reads a .env file from the working directory into the process
// environment. A missing file is not an error; already-set variables
// are not overwritten.
func Load() {
	_ = godotenv.Load()
}

// DatabaseURL returns the hosted store DSN. Returns ErrNoCredentials
// when unset: the caller must halt before any load.
func DatabaseURL() (string, error) {
	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		return "", types.ErrNoCredentials
	}
	return url, nil
}

// AppPassword returns the shared access password, or "" when the
// workspace is unguarded.
func AppPassword() string {
	return os.Getenv(EnvAppPassword)
}

// ProvidedPassword returns the password supplied by the operator via
// the environment; the --password flag takes precedence at the CLI.
func ProvidedPassword() string {
	return os.Getenv(EnvPassword)
}
