package lib

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestFile writes content to a file in a fresh temp directory.
func setupTestFile(t *testing.T, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "testfile.dat")
	require.NoError(t, os.WriteFile(filePath, content, 0o644))
	return filePath
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	content := make([]byte, n)
	_, err := rand.Read(content)
	require.NoError(t, err)
	return content
}

func TestDigestFile(t *testing.T) {
	t.Parallel()

	t.Run("large file is split into contiguous chunks", func(t *testing.T) {
		t.Parallel()
		content := randomBytes(t, 64*1024)
		digest, err := DigestFile(setupTestFile(t, content))
		require.NoError(t, err)

		assert.Greater(t, len(digest.Chunks), 1)
		assert.Equal(t, int64(len(content)), digest.Size)
		assert.Equal(t, GetHash(content), digest.Hash)

		var offset int64
		for _, chunk := range digest.Chunks {
			assert.Equal(t, offset, chunk.Offset)
			assert.LessOrEqual(t, chunk.Size, int64(maxChunkSize))
			assert.Equal(t, GetHash(content[chunk.Offset:chunk.Offset+chunk.Size]), chunk.Hash)
			offset += chunk.Size
		}
		assert.Equal(t, int64(len(content)), offset)
	})

	t.Run("small file is a single chunk", func(t *testing.T) {
		t.Parallel()
		content := []byte("this file is too small to be split.")
		digest, err := DigestFile(setupTestFile(t, content))
		require.NoError(t, err)

		require.Len(t, digest.Chunks, 1)
		assert.Equal(t, GetHash(content), digest.Chunks[0].Hash)
		assert.Equal(t, digest.Hash, digest.Chunks[0].Hash)
	})

	t.Run("empty file has no chunks", func(t *testing.T) {
		t.Parallel()
		digest, err := DigestFile(setupTestFile(t, nil))
		require.NoError(t, err)

		assert.Empty(t, digest.Chunks)
		assert.Zero(t, digest.Size)
		assert.Equal(t, GetHash(nil), digest.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := DigestFile(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestVerifyFiles(t *testing.T) {
	t.Parallel()
	content := randomBytes(t, 96*1024)

	t.Run("identical files", func(t *testing.T) {
		t.Parallel()
		result, err := VerifyFiles(setupTestFile(t, content), setupTestFile(t, content))
		require.NoError(t, err)
		assert.True(t, result.Equal)
		assert.Equal(t, int64(-1), result.MismatchOffset)
		assert.Equal(t, result.Source.Hash, result.Destination.Hash)
	})

	t.Run("mismatch is located in the right chunk", func(t *testing.T) {
		t.Parallel()
		changed := bytes.Clone(content)
		const flip = 70 * 1024
		changed[flip] ^= 0xff

		result, err := VerifyFiles(setupTestFile(t, content), setupTestFile(t, changed))
		require.NoError(t, err)
		assert.False(t, result.Equal)
		assert.LessOrEqual(t, result.MismatchOffset, int64(flip))
		assert.Greater(t, result.MismatchOffset+int64(maxChunkSize), int64(flip))
	})

	t.Run("truncated copy", func(t *testing.T) {
		t.Parallel()
		result, err := VerifyFiles(setupTestFile(t, content), setupTestFile(t, content[:len(content)/2]))
		require.NoError(t, err)
		assert.False(t, result.Equal)
		assert.GreaterOrEqual(t, result.MismatchOffset, int64(0))
	})

	t.Run("empty against non-empty", func(t *testing.T) {
		t.Parallel()
		result, err := VerifyFiles(setupTestFile(t, nil), setupTestFile(t, content))
		require.NoError(t, err)
		assert.False(t, result.Equal)
		assert.Equal(t, int64(0), result.MismatchOffset)
	})
}
