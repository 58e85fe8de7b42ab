package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes data under dir, creating parent directories
func WriteFile(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// ReadJSONFile decodes the JSON file at path into v
func ReadJSONFile(t *testing.T, path string, v any) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), "file %s: %s", path, string(data))
}

// AssertNotExists fails when path exists
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "expected %s not to exist", path)
}
