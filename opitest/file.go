package opitest

import (
	"opi/system/file"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func ResetAppFs() {
	// Reset the AppFs to the original filesystem
	file.AppFs = afero.NewOsFs()
}

// UseMemFs swaps file.AppFs for an in-memory filesystem for the duration of
// the test.
func UseMemFs(t *testing.T) afero.Fs {
	file.AppFs = afero.NewMemMapFs()
	t.Cleanup(ResetAppFs)
	return file.AppFs
}

// WriteBundle creates an offline bundle for distribution under root holding
// the given archive names. Names prefixed with "system/" land in the system
// archive subdirectory.
func WriteBundle(t *testing.T, fs afero.Fs, root, distribution string, archives ...string) string {
	dir := filepath.Join(root, distribution)
	require.NoError(t, fs.MkdirAll(dir, 0755))
	for _, a := range archives {
		p := filepath.Join(dir, a)
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(a), 0644))
	}
	return dir
}

func WriteOSRelease(t *testing.T, fs afero.Fs, path, content string) {
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func WriteExecutable(t *testing.T, fs afero.Fs, path string) {
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte{}, 0755))
}
