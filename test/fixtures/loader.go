package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// ManifestPath returns the absolute path of a fixture manifest.
func ManifestPath(filename string) string {
	return filepath.Join(fixturesDir(), "manifests", filename)
}

// LoadManifest loads a fixture manifest and returns its raw bytes.
func LoadManifest(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(ManifestPath(filename))
	require.NoError(t, err, "failed to load fixture manifest: %s", filename)
	return data
}

// LoadRPCResult loads a fixture JSON-RPC result object.
func LoadRPCResult(t *testing.T, filename string) map[string]any {
	t.Helper()
	path := filepath.Join(fixturesDir(), "rpc", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture RPC result: %s", filename)

	var res map[string]any
	require.NoError(t, json.Unmarshal(data, &res))
	return res
}
