package lib

import (
	"crypto/sha256"
	"encoding/hex"
)

// GetHash returns the lowercase hex SHA-256 of content.
func GetHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
