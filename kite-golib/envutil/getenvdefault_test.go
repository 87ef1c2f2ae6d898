package envutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenvDefault(t *testing.T) {
	const name = "ENVUTIL_TEST_MODEL_DIR"
	os.Unsetenv(name)
	assert.Equal(t, "models", GetenvDefault(name, "models"))

	require.NoError(t, os.Setenv(name, "/srv/models"))
	defer os.Unsetenv(name)
	assert.Equal(t, "/srv/models", GetenvDefault(name, "models"))
}

func TestGetenvDefaultInt(t *testing.T) {
	const name = "ENVUTIL_TEST_PORT"
	os.Unsetenv(name)
	port, err := GetenvDefaultInt(name, 8080)
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	require.NoError(t, os.Setenv(name, "9090"))
	defer os.Unsetenv(name)
	port, err = GetenvDefaultInt(name, 8080)
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	require.NoError(t, os.Setenv(name, "http"))
	port, err = GetenvDefaultInt(name, 8080)
	assert.Error(t, err)
	assert.Equal(t, 8080, port)
}
