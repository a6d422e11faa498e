package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates missing ancestors", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a", "b", "c")

		require.NoError(t, EnsureDir(path, DestinationDirMode))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm()&0o700, "owner needs full access")
	})

	t.Run("existing directory is a no-op", func(t *testing.T) {
		t.Parallel()
		path := t.TempDir()
		marker := filepath.Join(path, "marker")
		require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

		require.NoError(t, EnsureDir(path, DestinationDirMode))
		require.NoError(t, EnsureDir(path, DestinationDirMode))

		_, err := os.Stat(marker)
		assert.NoError(t, err)
	})

	t.Run("component that is a file fails", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		err := EnsureDir(filepath.Join(file, "sub"), DestinationDirMode)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create directory")
	})
}

func TestRestoreDirMode(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	require.NoError(t, os.Mkdir(src, 0o750))
	require.NoError(t, os.Chmod(src, 0o751))
	require.NoError(t, os.Mkdir(dst, 0o700))

	require.NoError(t, RestoreDirMode(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o751), info.Mode().Perm())

	err = RestoreDirMode(filepath.Join(root, "missing"), dst)
	assert.Error(t, err)
}

func TestIsWithin(t *testing.T) {
	t.Parallel()
	root := filepath.FromSlash("/data/src")
	tests := []struct {
		path string
		want bool
	}{
		{"/data/src", true},
		{"/data/src/a/b", true},
		{"/data/src/..cache", true},
		{"/data/src-copy", false},
		{"/data", false},
		{"/data/other/src", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWithin(root, filepath.FromSlash(tt.path)), tt.path)
	}
}

func TestResolvePath(t *testing.T) {
	t.Parallel()
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	realDir := filepath.Join(base, "realDir")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(realDir, link))

	got, err := ResolvePath(filepath.Join(link, "not", "yet"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realDir, "not", "yet"), got)

	got, err = ResolvePath(link)
	require.NoError(t, err)
	assert.Equal(t, realDir, got)

	_, err = os.Stat(filepath.Join(realDir, "not"))
	assert.True(t, os.IsNotExist(err), "resolving must not create anything")
}
