package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
	"golang.org/x/sync/errgroup"
)

// TreeOptions controls a tree copy.
type TreeOptions struct {
	Force   bool
	Verbose bool
	// Workers bounds the number of files copied at once. Values below one
	// mean runtime.NumCPU().
	Workers int
	// IgnoreFile overrides SRC/.fcopyignore. A relative path is resolved
	// against the source root.
	IgnoreFile string
	// Lock takes an exclusive lock next to the destination root for the
	// duration of the copy.
	Lock bool
}

// dirJob is a directory whose mode is applied once its contents are copied.
type dirJob struct {
	src string
	dst string
}

// treeRun holds the state shared by the walker and the copy workers.
type treeRun struct {
	out    io.Writer
	errOut io.Writer
	opts   TreeOptions

	mu      sync.Mutex
	summary types.TreeSummary
}

func (r *treeRun) record(req types.CopyRequest, result types.CopyResult, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.summary.Failed++
		Report(r.errOut, err)
		return
	}
	switch result.Kind {
	case types.KindSymlink:
		r.summary.Linked++
	default:
		r.summary.Copied++
		r.summary.Bytes += result.Bytes
	}
	if r.opts.Verbose {
		fmt.Fprintln(r.out, describeResult(req, result))
	}
}

func (r *treeRun) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Failed++
	Report(r.errOut, err)
}

func (r *treeRun) skip(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Skipped++
	if r.opts.Verbose {
		fmt.Fprintf(r.out, "skipping %s: not a regular file or symlink\n", path)
	}
}

// resolveTreeRoots returns absolute source and destination roots, rejecting
// a source that is not a directory and a destination inside the source.
func resolveTreeRoots(srcRoot, dstRoot string) (string, string, error) {
	absSrc, err := filepath.Abs(srcRoot)
	if err != nil {
		return "", "", fmt.Errorf("could not resolve absolute path for %s: %w", srcRoot, err)
	}
	// A symlinked source root is copied as the directory it points to.
	absSrc, err = filepath.EvalSymlinks(absSrc)
	if err != nil {
		return "", "", fmt.Errorf("source directory does not exist: %s: %w", srcRoot, err)
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return "", "", fmt.Errorf("source directory does not exist: %s: %w", absSrc, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("source is not a directory: %s", absSrc)
	}

	// The destination may not exist yet, so only its existing part can be
	// resolved. Comparing against the resolved source needs both.
	absDst, err := lib.ResolvePath(dstRoot)
	if err != nil {
		return "", "", fmt.Errorf("could not resolve absolute path for %s: %w", dstRoot, err)
	}

	if lib.IsWithin(absSrc, absDst) {
		return "", "", fmt.Errorf("destination %s is inside source %s", absDst, absSrc)
	}
	return absSrc, absDst, nil
}

// Tree is the main function for the 'tree' command. It copies every regular
// file and symlink below srcRoot to the same relative path below dstRoot.
//
// A failing entry is reported and counted, and the copy carries on with the
// rest of the tree. The returned error matches ErrReported when any entry
// failed; other errors mean the copy could not start or was cancelled.
func Tree(ctx context.Context, stdout, stderr io.Writer, srcRoot, dstRoot string, opts TreeOptions) (types.TreeSummary, error) {
	absSrc, absDst, err := resolveTreeRoots(srcRoot, dstRoot)
	if err != nil {
		return types.TreeSummary{}, err
	}

	if err := lib.EnsureDir(absDst, lib.DestinationDirMode); err != nil {
		return types.TreeSummary{}, err
	}

	if opts.Lock {
		fl, err := lib.AcquireLock(ctx, lib.LockPath(absDst))
		if err != nil {
			return types.TreeSummary{}, err
		}
		defer lib.ReleaseLock(fl)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	matcher := lib.NewIgnoreMatcher(absSrc, opts.IgnoreFile)
	run := &treeRun{out: stdout, errOut: stderr, opts: opts}
	dirs := []dirJob{{src: absSrc, dst: absDst}}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	walkErr := filepath.WalkDir(absSrc, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := gctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == absSrc {
				return err
			}
			run.fail(&lib.CopyError{Kind: lib.ErrSourceOpen, Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absSrc {
			return nil
		}

		if matcher.Ignored(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absSrc, path)
		if err != nil {
			return err
		}
		target := filepath.Join(absDst, rel)

		switch {
		case d.IsDir():
			if err := lib.EnsureDir(target, lib.DestinationDirMode); err != nil {
				run.fail(&lib.CopyError{Kind: lib.ErrDirectoryCreation, Path: target, Err: err})
				return filepath.SkipDir
			}
			dirs = append(dirs, dirJob{src: path, dst: target})
		case d.Type().IsRegular(), d.Type()&fs.ModeSymlink != 0:
			req := types.CopyRequest{
				Source:      path,
				Destination: target,
				Force:       opts.Force,
				Verbose:     opts.Verbose,
			}
			g.Go(func() error {
				result, err := lib.CopyFile(req)
				run.record(req, result, err)
				return nil
			})
		default:
			run.skip(path)
		}
		return nil
	})

	// Workers never return errors, so Wait only waits.
	_ = g.Wait()

	// Walk order is parent first, so applying modes in reverse handles every
	// child before a parent that may lose write permission.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := lib.RestoreDirMode(dirs[i].src, dirs[i].dst); err != nil {
			lib.Logger().Warn("could not set mode on directory", "path", dirs[i].dst, "err", err)
		}
	}

	summary := run.summary
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return summary, fmt.Errorf("tree copy interrupted: %w", walkErr)
		}
		return summary, fmt.Errorf("failed to walk %s: %w", absSrc, walkErr)
	}
	if summary.Failed > 0 {
		return summary, reported(fmt.Errorf("%d entries failed to copy", summary.Failed))
	}
	return summary, nil
}
