package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/commands"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyOne(t *testing.T) {
	t.Parallel()

	t.Run("copies quietly by default", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "hello")
		dst := filepath.Join(dir, "out", "dst.txt")

		var buf bytes.Buffer
		result, err := commands.CopyOne(&buf, &buf, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{})
		require.NoError(t, err)

		assert.Equal(t, int64(5), result.Bytes)
		assert.Equal(t, "hello", readFile(t, dst))
		assert.Empty(t, buf.String())
	})

	t.Run("verbose describes the copy", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "hello")
		dst := filepath.Join(dir, "dst.txt")

		var buf bytes.Buffer
		_, err := commands.CopyOne(&buf, &buf, types.CopyRequest{Source: src, Destination: dst, Verbose: true}, commands.FileOptions{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), src+" -> "+dst)
		assert.Contains(t, buf.String(), "5.00 Bytes")
	})

	t.Run("failure is reported once", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "new")
		dst := writeFile(t, dir, "dst.txt", "old")

		var stdout, stderr bytes.Buffer
		_, err := commands.CopyOne(&stdout, &stderr, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{})
		require.Error(t, err)

		assert.ErrorIs(t, err, commands.ErrReported)
		assert.ErrorIs(t, err, lib.ErrDestinationExists)
		assert.Equal(t, "*** "+dst+" already exists: file exists\n", stderr.String())
		assert.Empty(t, stdout.String())
		assert.Equal(t, "old", readFile(t, dst))
	})

	t.Run("invalid request is returned, not reported", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, err := commands.CopyOne(&buf, &buf, types.CopyRequest{Destination: "x"}, commands.FileOptions{})
		assert.ErrorIs(t, err, lib.ErrEmptySource)
		assert.NotErrorIs(t, err, commands.ErrReported)
		assert.Empty(t, buf.String())
	})

	t.Run("confirmed overwrite", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "new")
		dst := writeFile(t, dir, "dst.txt", "old")

		var asked []string
		confirm := func(path string) bool {
			asked = append(asked, path)
			return true
		}

		_, err := commands.CopyOne(&bytes.Buffer{}, &bytes.Buffer{}, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{Confirm: confirm})
		require.NoError(t, err)
		assert.Equal(t, []string{dst}, asked)
		assert.Equal(t, "new", readFile(t, dst))
	})

	t.Run("declined overwrite", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "new")
		dst := writeFile(t, dir, "dst.txt", "old")

		var buf bytes.Buffer
		confirm := func(string) bool { return false }
		_, err := commands.CopyOne(&buf, &buf, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{Confirm: confirm})

		assert.ErrorIs(t, err, lib.ErrDestinationExists)
		assert.ErrorIs(t, err, commands.ErrReported)
		assert.Equal(t, "*** "+dst+" already exists\n", buf.String())
		assert.Equal(t, "old", readFile(t, dst))
	})

	t.Run("confirm is not asked without a destination or with force", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "new")
		dst := filepath.Join(dir, "dst.txt")

		confirm := func(string) bool {
			t.Error("confirm should not be called")
			return false
		}
		_, err := commands.CopyOne(&bytes.Buffer{}, &bytes.Buffer{}, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{Confirm: confirm})
		require.NoError(t, err)

		_, err = commands.CopyOne(&bytes.Buffer{}, &bytes.Buffer{}, types.CopyRequest{Source: src, Destination: dst, Force: true}, commands.FileOptions{Confirm: confirm})
		require.NoError(t, err)
	})

	t.Run("verify after copy", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "src.txt", "verified content")
		dst := filepath.Join(dir, "dst.txt")

		var buf bytes.Buffer
		_, err := commands.CopyOne(&buf, &buf, types.CopyRequest{Source: src, Destination: dst}, commands.FileOptions{Verify: true})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "identical")
		assert.Contains(t, buf.String(), lib.GetHash([]byte("verified content")))
	})
}
