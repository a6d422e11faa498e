//go:build !unix

package lib

import (
	"io/fs"
	"os"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
)

const maxLinkTarget = 4096

func lstatSource(path string) (types.SourceMetadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return types.SourceMetadata{}, err
	}

	kind := types.KindOther
	switch {
	case info.Mode().IsRegular():
		kind = types.KindRegular
	case info.Mode()&fs.ModeSymlink != 0:
		kind = types.KindSymlink
	}

	// Ownership is not exposed here; -1 leaves it unchanged.
	return types.SourceMetadata{
		Kind: kind,
		Mode: uint32(info.Mode().Perm()),
		UID:  -1,
		GID:  -1,
		Size: info.Size(),
	}, nil
}

func readLink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if len(target) > maxLinkTarget {
		return "", ErrSymlinkTooLong
	}
	return target, nil
}

func isPrivileged() bool {
	return false
}

func chown(path string, uid, gid int) error {
	return os.Chown(path, uid, gid)
}

func chmod(path string, mode uint32) error {
	return os.Chmod(path, fs.FileMode(mode).Perm())
}
