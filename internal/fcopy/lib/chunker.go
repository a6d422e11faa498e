package lib

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/aclements/go-rabin/rabin"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
)

// Rabin chunker configuration. Boundaries depend only on content, so an
// insertion early in a file does not shift every later chunk.
const (
	minChunkSize = 4 * 1024
	avgChunkSize = 8 * 1024
	maxChunkSize = 16 * 1024

	defaultPoly       = rabin.Poly64
	defaultWindowSize = 64
)

// rabinTable is expensive to build and safe to share between chunkers.
var rabinTable = rabin.NewTable(defaultPoly, defaultWindowSize)

// DigestFile streams the file at path through a Rabin chunker and returns the
// SHA-256 of every chunk along with the SHA-256 of the whole file. Memory use
// is bounded by the maximum chunk size, not the file size.
func DigestFile(path string) (types.FileDigest, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.FileDigest{}, err
	}
	defer file.Close()

	whole := sha256.New()
	// The chunker reports lengths only. Everything it reads is teed into
	// pending, and each reported length is cut off the front of it.
	var pending bytes.Buffer
	reader := io.TeeReader(io.TeeReader(file, whole), &pending)
	chunker := rabin.NewChunker(rabinTable, reader, minChunkSize, avgChunkSize, maxChunkSize)

	digest := types.FileDigest{Path: path, Chunks: []types.ChunkDigest{}}
	for {
		length, err := chunker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.FileDigest{}, err
		}
		// Empty input yields one zero-length chunk before EOF.
		if length == 0 {
			continue
		}
		appendChunk(&digest, pending.Next(length))
	}

	// A file shorter than the minimum chunk size can end without a boundary.
	if pending.Len() > 0 {
		appendChunk(&digest, pending.Next(pending.Len()))
	}

	digest.Hash = hex.EncodeToString(whole.Sum(nil))
	return digest, nil
}

func appendChunk(digest *types.FileDigest, data []byte) {
	digest.Chunks = append(digest.Chunks, types.ChunkDigest{
		Offset: digest.Size,
		Size:   int64(len(data)),
		Hash:   GetHash(data),
	})
	digest.Size += int64(len(data))
}

// CompareDigests reports whether a and b describe the same content, and if
// not, the offset of the first chunk that differs.
func CompareDigests(a, b types.FileDigest) (bool, int64) {
	n := min(len(a.Chunks), len(b.Chunks))
	for i := 0; i < n; i++ {
		if a.Chunks[i].Hash != b.Chunks[i].Hash {
			return false, a.Chunks[i].Offset
		}
	}
	if len(a.Chunks) != len(b.Chunks) || a.Size != b.Size {
		if n == 0 {
			return false, 0
		}
		last := a.Chunks[n-1]
		return false, last.Offset + last.Size
	}
	return true, -1
}

// VerifyFiles digests both files and compares them chunk by chunk.
func VerifyFiles(srcPath, dstPath string) (types.VerifyResult, error) {
	src, err := DigestFile(srcPath)
	if err != nil {
		return types.VerifyResult{}, err
	}
	dst, err := DigestFile(dstPath)
	if err != nil {
		return types.VerifyResult{}, err
	}

	equal, offset := CompareDigests(src, dst)
	return types.VerifyResult{
		Equal:          equal,
		MismatchOffset: offset,
		Source:         src,
		Destination:    dst,
	}, nil
}
