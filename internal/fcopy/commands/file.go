package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
)

// FileOptions adjusts a single-file copy beyond what CopyRequest carries.
type FileOptions struct {
	// Verify compares source and destination chunk by chunk after a regular
	// file has been copied.
	Verify bool

	// Confirm, when set and Force is not, is asked before an existing
	// destination is replaced. A yes turns the copy into a forced one.
	Confirm func(path string) bool
}

// CopyOne is the main function for the 'file' command. Failures go to
// stderr as "*** " lines; verbose and verification output go to stdout.
func CopyOne(stdout, stderr io.Writer, req types.CopyRequest, opts FileOptions) (types.CopyResult, error) {
	if opts.Confirm != nil && !req.Force && destinationExists(req.Destination) {
		if !opts.Confirm(req.Destination) {
			err := &lib.CopyError{Kind: lib.ErrDestinationExists, Path: req.Destination}
			Report(stderr, err)
			return types.CopyResult{}, reported(err)
		}
		req.Force = true
	}

	result, err := lib.CopyFile(req)
	if err != nil && (errors.Is(err, lib.ErrEmptySource) || errors.Is(err, lib.ErrEmptyDestination)) {
		return result, err
	}
	if err != nil {
		Report(stderr, err)
		return result, reported(err)
	}

	if req.Verbose {
		fmt.Fprintln(stdout, describeResult(req, result))
	}

	if opts.Verify && result.Kind == types.KindRegular {
		if _, err := Verify(stdout, stderr, req.Source, req.Destination); err != nil {
			return result, err
		}
	}
	return result, nil
}

// destinationExists reports whether anything, including a dangling symlink,
// occupies path.
func destinationExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// describeResult formats a successful copy for verbose output.
func describeResult(req types.CopyRequest, result types.CopyResult) string {
	if result.Kind == types.KindSymlink {
		return fmt.Sprintf("%s -> %s (symlink to %s)", req.Source, req.Destination, result.LinkTarget)
	}
	return fmt.Sprintf("%s -> %s (%s)", req.Source, req.Destination, formatBytes(result.Bytes, 2))
}
