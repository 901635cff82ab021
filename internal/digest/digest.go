package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// SHA1 is the algorithm the package verification code standard requires.
const SHA1 = "sha1"

// ErrUnknownAlgorithm is returned when the requested hash algorithm is not
// available. There is no fallback.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// Algorithm describes a supported hash function. New returns a fresh
// accumulator per call; accumulators are never shared or reset-reused, so
// concurrent hashing is safe as long as each computation gets its own.
type Algorithm struct {
	Name string
	Size int // digest size in bytes
	New  func() hash.Hash
}

// Lookup resolves an algorithm by name (case-insensitive).
func Lookup(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case SHA1:
		return Algorithm{Name: SHA1, Size: sha1.Size, New: sha1.New}, nil
	case "sha256":
		return Algorithm{Name: "sha256", Size: sha256.Size, New: sha256.New}, nil
	case "sha512":
		return Algorithm{Name: "sha512", Size: sha512.Size, New: sha512.New}, nil
	default:
		return Algorithm{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
}

// File computes the digest of a file's content, streaming it in fixed-size
// chunks so arbitrarily large files never load into memory whole. The
// result is the lowercase hex encoding, two digits per byte.
func File(path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	h := algo.New()
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes computes the digest of an in-memory byte slice as lowercase hex.
func Bytes(b []byte, algo Algorithm) string {
	h := algo.New()
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
