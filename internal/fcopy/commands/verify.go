package commands

import (
	"fmt"
	"io"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
)

// Verify is the main function for the 'verify' command. It prints the
// SHA-256 of both files to stdout, and a "*** " line to stderr when their
// content differs.
func Verify(stdout, stderr io.Writer, srcPath, dstPath string) (types.VerifyResult, error) {
	result, err := lib.VerifyFiles(srcPath, dstPath)
	if err != nil {
		return result, fmt.Errorf("failed to verify %s against %s: %w", srcPath, dstPath, err)
	}

	fmt.Fprintf(stdout, "%s  %s\n", result.Source.Hash, srcPath)
	fmt.Fprintf(stdout, "%s  %s\n", result.Destination.Hash, dstPath)

	if !result.Equal {
		err := fmt.Errorf("%s and %s differ at offset %d", srcPath, dstPath, result.MismatchOffset)
		Report(stderr, err)
		return result, reported(err)
	}
	fmt.Fprintf(stdout, "identical (%d chunks, %s)\n", len(result.Source.Chunks), formatBytes(result.Source.Size, 2))
	return result, nil
}
