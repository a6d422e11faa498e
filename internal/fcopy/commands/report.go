package commands

import (
	"fmt"
	"io"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/gingerrexayers/fcopy-go/internal/sentinel"
)

// ErrReported marks an error whose details were already written by the
// command. Callers should set the exit status without printing it again.
const ErrReported = sentinel.Error("failure already reported")

const failurePrefix = "*** "

// Report writes one "*** " line per copy failure contained in err.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case *lib.CopyError:
		// Checked first: a CopyError also unwraps to several errors.
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			Report(w, inner)
		}
		return
	}
	fmt.Fprintln(w, failurePrefix+err.Error())
}

// reported wraps err so it matches ErrReported and still matches its cause.
func reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}
