package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NSC-Rick/stjregistry/pkg/types"
)

func TestDatabaseURL(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "postgres://registry")
		url, err := DatabaseURL()
		require.NoError(t, err)
		assert.Equal(t, "postgres://registry", url)
	})

	t.Run("unset is a credentials error", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "")
		_, err := DatabaseURL()
		assert.ErrorIs(t, err, types.ErrNoCredentials)
	})
}

func TestPasswords(t *testing.T) {
	t.Setenv(EnvAppPassword, "hunter2")
	t.Setenv(EnvPassword, "hunter2")
	assert.Equal(t, "hunter2", AppPassword())
	assert.Equal(t, "hunter2", ProvidedPassword())
}
