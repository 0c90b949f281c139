package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCfgPath(t *testing.T) {
	assert.Equal(t, "/srv/booking/apiserver.yaml", GetCfgPath("/srv/booking/apiserver.yaml"))

	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	realpath := func(p string) string {
		r, err := filepath.EvalSymlinks(p)
		require.NoError(t, err)
		return r
	}

	const name = "apiserver.yaml"
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", name), []byte("x"), 0o644))
	assert.Equal(t, realpath(filepath.Join(tmp, "configs", name)), realpath(GetCfgPath(name)))

	// the working directory wins over ./configs
	require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	assert.Equal(t, realpath(filepath.Join(tmp, name)), realpath(GetCfgPath(name)))

	// directories are not configuration files
	require.NoError(t, os.MkdirAll("other.yaml", 0o755))
	assert.Equal(t, filepath.Join(SystemConfigDir, "other.yaml"), GetCfgPath("other.yaml"))

	assert.Equal(t, filepath.Join(SystemConfigDir, "missing.yaml"), GetCfgPath("missing.yaml"))
}
