//go:build unix

package lib

import (
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
	"golang.org/x/sys/unix"
)

// maxLinkTarget is PATH_MAX on Linux. Linux refuses to create longer
// targets, so there the limit only guards other unix kernels.
const maxLinkTarget = 4096

const permBits = unix.S_ISUID | unix.S_ISGID | unix.S_ISVTX | 0o777

func lstatSource(path string) (types.SourceMetadata, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return types.SourceMetadata{}, err
	}

	mode := uint32(st.Mode)
	kind := types.KindOther
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		kind = types.KindRegular
	case unix.S_IFLNK:
		kind = types.KindSymlink
	}

	return types.SourceMetadata{
		Kind: kind,
		Mode: mode & permBits,
		UID:  int(st.Uid),
		GID:  int(st.Gid),
		Size: int64(st.Size),
	}, nil
}

func readLink(path string) (string, error) {
	return readLinkLimit(path, maxLinkTarget)
}

// readLinkLimit reads one byte past limit so an over-long target can be
// told apart from one that fits exactly.
func readLinkLimit(path string, limit int) (string, error) {
	buf := make([]byte, limit+1)
	n, err := unix.Readlink(path, buf)
	if err != nil {
		return "", err
	}
	if n > limit {
		return "", ErrSymlinkTooLong
	}
	return string(buf[:n]), nil
}

func isPrivileged() bool {
	return unix.Geteuid() == 0
}

func chown(path string, uid, gid int) error {
	return unix.Chown(path, uid, gid)
}

// chmod applies raw mode bits so setuid, setgid and sticky survive unchanged.
func chmod(path string, mode uint32) error {
	return unix.Chmod(path, mode&permBits)
}
