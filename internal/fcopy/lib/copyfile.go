// Package lib contains the core, reusable services for the fcopy application.
package lib

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
)

// copyBufferSize matches BUFSIZ on glibc.
const copyBufferSize = 8 * 1024

// New destination files start out owner read/write, world readable. The
// final mode is taken from the source once the content is in place.
const (
	createFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	createMode  = 0o644
)

// destination is the write side of a regular-file copy.
type destination interface {
	io.Writer
	Close() error
}

// fileOps holds the filesystem calls CopyFile makes on the destination.
type fileOps struct {
	openDestination func(name string, flag int, perm os.FileMode) (destination, error)
}

var osFileOps = fileOps{
	openDestination: func(name string, flag int, perm os.FileMode) (destination, error) {
		f, err := os.OpenFile(name, flag, perm)
		if err != nil {
			return nil, err
		}
		return f, nil
	},
}

// bufferPool hands out one copy buffer per in-flight copy, so tree copies
// running on several workers never share a buffer.
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, copyBufferSize)
		return &buf
	},
}

// CopyFile copies the regular file or symlink at req.Source to req.Destination,
// creating the destination's parent directories as needed.
//
// Symlinks are recreated with the same target and never overwrite an existing
// destination. Regular files are created exclusively; an existing destination
// is replaced only when req.Force is set. After the content is copied, the
// source's permission and special bits are applied to the destination, and
// when running as root its owner and group as well.
//
// A failure while copying content removes the destination. A failure while
// restoring metadata leaves the fully-written destination in place. The
// returned error is a *CopyError, or a join of them for metadata failures.
func CopyFile(req types.CopyRequest) (types.CopyResult, error) {
	return copyFile(req, osFileOps)
}

func copyFile(req types.CopyRequest, ops fileOps) (types.CopyResult, error) {
	if req.Source == "" {
		return types.CopyResult{}, ErrEmptySource
	}
	if req.Destination == "" {
		return types.CopyResult{}, ErrEmptyDestination
	}

	meta, err := lstatSource(req.Source)
	if err != nil {
		return types.CopyResult{}, &CopyError{Kind: ErrStat, Path: req.Source, Err: err}
	}

	destDir := filepath.Dir(req.Destination)
	if err := EnsureDir(destDir, DestinationDirMode); err != nil {
		return types.CopyResult{}, &CopyError{Kind: ErrDirectoryCreation, Path: destDir, Err: err}
	}

	if meta.Kind == types.KindSymlink {
		return copySymlink(req)
	}
	return copyRegular(req, meta, ops)
}

func copySymlink(req types.CopyRequest) (types.CopyResult, error) {
	target, err := readLink(req.Source)
	if errors.Is(err, ErrSymlinkTooLong) {
		return types.CopyResult{}, &CopyError{Kind: ErrSymlinkTooLong, Path: req.Source}
	}
	if err != nil {
		return types.CopyResult{}, &CopyError{Kind: ErrReadlink, Path: req.Source, Err: err}
	}

	if err := os.Symlink(target, req.Destination); err != nil {
		return types.CopyResult{}, &CopyError{Kind: ErrSymlinkCreate, Path: req.Destination, Err: err}
	}
	return types.CopyResult{Kind: types.KindSymlink, LinkTarget: target}, nil
}

func copyRegular(req types.CopyRequest, meta types.SourceMetadata, ops fileOps) (types.CopyResult, error) {
	src, err := os.Open(req.Source)
	if err != nil {
		return types.CopyResult{}, &CopyError{Kind: ErrSourceOpen, Path: req.Source, Err: err}
	}
	// Closed explicitly below; the deferred Close covers early returns and panics.
	defer src.Close()

	dst, err := createDestination(req, ops)
	if err != nil {
		return types.CopyResult{}, err
	}
	defer dst.Close()

	written, copyErr := streamCopy(dst, src, req.Source, req.Destination)

	var closeErrs []error
	if err := dst.Close(); err != nil {
		closeErrs = append(closeErrs, &CopyError{Kind: ErrClose, Path: req.Destination, Err: err})
	}
	if err := src.Close(); err != nil {
		closeErrs = append(closeErrs, &CopyError{Kind: ErrClose, Path: req.Source, Err: err})
	}

	if err := errors.Join(append([]error{copyErr}, closeErrs...)...); err != nil {
		// Best effort: the original failure is what gets reported.
		_ = os.Remove(req.Destination)
		return types.CopyResult{}, err
	}

	result := types.CopyResult{Kind: types.KindRegular, Bytes: written}
	return result, restoreMetadata(req.Destination, meta)
}

// createDestination opens the destination exclusively. An existing file is
// removed and the create retried once, but only when req.Force is set.
func createDestination(req types.CopyRequest, ops fileOps) (destination, error) {
	dst, err := ops.openDestination(req.Destination, createFlags, createMode)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return nil, &CopyError{Kind: ErrDestinationOpen, Path: req.Destination, Err: err}
	}

	if req.Verbose {
		if req.Force {
			Logger().Info("destination already exists, overwriting", "path", req.Destination)
		} else {
			Logger().Info("destination already exists", "path", req.Destination)
		}
	}
	if !req.Force {
		return nil, &CopyError{Kind: ErrDestinationExists, Path: req.Destination, Err: err}
	}

	if err := os.Remove(req.Destination); err != nil {
		return nil, &CopyError{Kind: ErrDestinationRemove, Path: req.Destination, Err: err}
	}
	dst, err = ops.openDestination(req.Destination, createFlags, createMode)
	if err != nil {
		return nil, &CopyError{Kind: ErrDestinationStillExists, Path: req.Destination, Err: err}
	}
	return dst, nil
}

// streamCopy moves bytes from src to dst through a pooled buffer and stops at
// the first read error, write error or short write.
func streamCopy(dst io.Writer, src io.Reader, srcPath, dstPath string) (int64, error) {
	bufp := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufp)
	buf := *bufp

	var written int64
	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			if nw > 0 {
				written += int64(nw)
			}
			if writeErr != nil {
				return written, &CopyError{Kind: ErrWrite, Path: dstPath, Err: writeErr}
			}
			if nw != nr {
				return written, &CopyError{Kind: ErrWrite, Path: dstPath, Err: io.ErrShortWrite}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &CopyError{Kind: ErrRead, Path: srcPath, Err: readErr}
		}
	}
}

// restoreMetadata applies the source's owner (root only) and mode to path.
// Both steps are attempted even if the first fails.
func restoreMetadata(path string, meta types.SourceMetadata) error {
	var errs []error
	if isPrivileged() {
		if err := chown(path, meta.UID, meta.GID); err != nil {
			errs = append(errs, &CopyError{Kind: ErrOwnership, Path: path, Err: err})
		}
	}
	if err := chmod(path, meta.Mode); err != nil {
		errs = append(errs, &CopyError{Kind: ErrPermission, Path: path, Err: err})
	}
	return errors.Join(errs...)
}
