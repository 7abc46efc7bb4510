package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoster(t, `
counties:
  Midland:
    - "1008052"
    - "1008123"
  Eddy:
    - "1009001"
  Empty: []
`)
	r, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, []string{"Eddy", "Midland"}, r.Counties())
	require.Equal(t, []string{"1008052", "1008123"}, r["Midland"])
	require.NotContains(t, r, "Empty")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeRoster(t, "counties: {}"))
	require.Error(t, err)

	_, err = Load(writeRoster(t, ":\tnot yaml"))
	require.Error(t, err)
}
