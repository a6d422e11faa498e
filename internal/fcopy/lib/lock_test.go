package lib

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("/backups", ".site.fcopy.lock"), LockPath("/backups/site/"))
	assert.Equal(t, filepath.Join(".", ".out.fcopy.lock"), LockPath("out"))
}

func TestAcquireLock(t *testing.T) {
	t.Parallel()
	lockPath := filepath.Join(t.TempDir(), "dst.lock")

	first, err := AcquireLock(context.Background(), lockPath)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = AcquireLock(ctx, lockPath)
	require.Error(t, err, "a held lock must not be acquired twice")

	ReleaseLock(first)

	second, err := AcquireLock(context.Background(), lockPath)
	require.NoError(t, err)
	ReleaseLock(second)

	// Releasing nil is a no-op.
	ReleaseLock(nil)
}
