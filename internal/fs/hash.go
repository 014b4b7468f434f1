package fs

import (
	_ "crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/opencontainers/go-digest"
)

// hashBytes computes the raw content digest used across the package.
func hashBytes(b []byte) []byte {
	h := digest.Canonical.Hash()
	_, _ = h.Write(b)
	return h.Sum(nil)
}

func encodeHash(sum []byte) string {
	return base64.StdEncoding.EncodeToString(sum)
}

// Digest returns the algorithm-prefixed digest ("sha256:...") of the file at
// path. It uses the same algorithm as GetFileHash.
func Digest(fsys FileSystem, path string) (digest.Digest, error) {
	data, err := fsys.ReadAllBytes(path)
	if err != nil {
		return "", fmt.Errorf("digesting %s: %w", path, err)
	}
	return digest.Canonical.FromBytes(data), nil
}
