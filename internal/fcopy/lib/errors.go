package lib

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gingerrexayers/fcopy-go/internal/sentinel"
)

// Request validation errors.
const (
	ErrEmptySource      = sentinel.Error("source path must not be empty")
	ErrEmptyDestination = sentinel.Error("destination path must not be empty")
)

// Failure kinds reported by CopyFile. A returned *CopyError matches exactly
// one of these with errors.Is.
const (
	ErrStat                   = sentinel.Error("stat source")
	ErrDirectoryCreation      = sentinel.Error("create destination directory")
	ErrSymlinkTooLong         = sentinel.Error("symlink target too long")
	ErrReadlink               = sentinel.Error("read symlink")
	ErrSymlinkCreate          = sentinel.Error("create symlink")
	ErrSourceOpen             = sentinel.Error("open source")
	ErrDestinationExists      = sentinel.Error("destination exists")
	ErrDestinationRemove      = sentinel.Error("remove destination")
	ErrDestinationStillExists = sentinel.Error("destination still exists")
	ErrDestinationOpen        = sentinel.Error("open destination")
	ErrRead                   = sentinel.Error("read source")
	ErrWrite                  = sentinel.Error("write destination")
	ErrClose                  = sentinel.Error("close")
	ErrOwnership              = sentinel.Error("restore ownership")
	ErrPermission             = sentinel.Error("restore permissions")
)

// messages holds the operator-facing text for each kind; %s is the path.
var messages = map[error]string{
	ErrStat:                   "Unable to stat %s",
	ErrDirectoryCreation:      "Unable to create directory %s",
	ErrSymlinkTooLong:         "Symlink target of %s is too long",
	ErrReadlink:               "Unable to read symlink info on %s",
	ErrSymlinkCreate:          "Unable to create symlink %s",
	ErrSourceOpen:             "Unable to open %s for reading",
	ErrDestinationExists:      "%s already exists",
	ErrDestinationRemove:      "Unable to remove %s",
	ErrDestinationStillExists: "Still unable to open %s, giving up",
	ErrDestinationOpen:        "Unable to open %s for writing",
	ErrRead:                   "Error reading from %s",
	ErrWrite:                  "Error writing to %s",
	ErrClose:                  "Error closing %s",
	ErrOwnership:              "Unable to change ownership of %s",
	ErrPermission:             "Unable to change mode of %s",
}

// CopyError records which step of a copy failed, on which path, and why.
type CopyError struct {
	Kind error
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	format, ok := messages[e.Kind]
	if !ok {
		format = e.Kind.Error() + " %s"
	}
	msg := fmt.Sprintf(format, e.Path)
	if e.Err == nil {
		return msg
	}
	// The path is already part of the message, so drop the one os adds.
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return msg + ": " + cause.Error()
}

func (e *CopyError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Status maps the result of CopyFile to a process-style status code.
func Status(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
