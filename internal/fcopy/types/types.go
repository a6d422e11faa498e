package types

// FileKind is the filesystem type of a copy source as seen by lstat.
type FileKind int

const (
	KindOther FileKind = iota
	KindRegular
	KindSymlink
)

func (k FileKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// CopyRequest describes a single copy. It is not modified by the copier.
type CopyRequest struct {
	Source      string
	Destination string
	Force       bool // Replace an existing destination file.
	Verbose     bool // Log a notice when the destination already exists.
}

// SourceMetadata is the status of the source captured before anything is copied.
type SourceMetadata struct {
	Kind FileKind
	Mode uint32 // Permission and special bits only (setuid, setgid, sticky, rwx).
	UID  int
	GID  int
	Size int64
}

// CopyResult describes what a successful copy produced.
type CopyResult struct {
	Kind       FileKind
	Bytes      int64
	LinkTarget string
}

// ChunkDigest is one content-defined chunk of a file.
type ChunkDigest struct {
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"`
}

// FileDigest holds the whole-file hash and the chunk list of a file.
type FileDigest struct {
	Path   string        `json:"path"`
	Size   int64         `json:"size"`
	Hash   string        `json:"hash"`
	Chunks []ChunkDigest `json:"chunks"`
}

// VerifyResult is the outcome of comparing two files chunk by chunk.
// MismatchOffset is -1 when the files are identical.
type VerifyResult struct {
	Equal          bool
	MismatchOffset int64
	Source         FileDigest
	Destination    FileDigest
}

// TreeSummary counts what a tree copy did.
type TreeSummary struct {
	Copied  int
	Linked  int
	Skipped int
	Failed  int
	Bytes   int64
}
