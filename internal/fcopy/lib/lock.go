package lib

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is how often a held destination lock is polled.
const lockRetryInterval = 50 * time.Millisecond

// LockPath returns the lock file guarding copies into dstRoot. It lives next
// to dstRoot, not inside it, so it never shows up in the copied tree.
func LockPath(dstRoot string) string {
	clean := filepath.Clean(dstRoot)
	return filepath.Join(filepath.Dir(clean), "."+filepath.Base(clean)+".fcopy.lock")
}

// AcquireLock takes an exclusive lock on lockPath, polling until it is free
// or ctx is done.
func AcquireLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquire lock %s: lock not acquired", lockPath)
	}
	return fl, nil
}

// ReleaseLock unlocks and closes fl. The lock file stays on disk; removing it
// could break a lock another process has just taken on the same path.
func ReleaseLock(fl *flock.Flock) {
	if fl == nil {
		return
	}
	if err := fl.Close(); err != nil {
		Logger().Debug("failed to release lock", "path", fl.Path(), "err", err)
	}
}
