// Package hkdf wraps golang.org/x/crypto/hkdf's Extract/Expand (RFC 5869)
// with the explicit two-step API and bounds checking spec.md §4.4 requires,
// and the hash-name variant table the HKDF key chain dispatches on.
package hkdf

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	xhkdf "golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// SkipValidation disables bounds checks; see primitive/prg for rationale.
var SkipValidation = false

// ErrInvalidLength is raised by parameter validation (spec.md §4.4).
type ErrInvalidLength struct {
	Field    string
	Got      int
	Bound    int
	BoundDir string
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("hkdf: %s is %d bytes, %s bound is %d", e.Field, e.Got, e.BoundDir, e.Bound)
}

// ErrUnsupportedVariant is raised for an unrecognised hash name.
type ErrUnsupportedVariant struct{ Name string }

func (e *ErrUnsupportedVariant) Error() string {
	return fmt.Sprintf("hkdf: unsupported hash variant %q", e.Name)
}

// newHashFuncs maps the four hkdf-* variant tags from spec.md §3 to their
// keyed-hash constructors.
var newHashFuncs = map[string]func() hash.Hash{
	"hkdf-sha256":   sha256.New,
	"hkdf-sha512":   sha512.New,
	"hkdf-sha3-256": sha3.New256,
	"hkdf-sha3-512": sha3.New512,
}

// NewHashFunc looks up the keyed-hash constructor for a variant tag.
func NewHashFunc(variant string) (func() hash.Hash, error) {
	fn, ok := newHashFuncs[variant]
	if !ok {
		return nil, &ErrUnsupportedVariant{Name: variant}
	}
	return fn, nil
}

// DigestSize returns the output size in bytes of the hash built by newHash.
func DigestSize(newHash func() hash.Hash) int {
	return newHash().Size()
}

// Extract computes PRK = HMAC(salt, IKM) (spec.md §4.4). A nil salt becomes
// digest_size zero bytes.
func Extract(newHash func() hash.Hash, salt, ikm []byte) ([]byte, error) {
	digestSize := DigestSize(newHash)
	if !SkipValidation && salt != nil && len(salt) > digestSize {
		return nil, &ErrInvalidLength{Field: "salt", Got: len(salt), Bound: digestSize, BoundDir: "max"}
	}
	return xhkdf.Extract(newHash, ikm, salt), nil
}

// Expand computes OKM = T_1 ∥ T_2 ∥ … truncated to l bytes (spec.md §4.4).
func Expand(newHash func() hash.Hash, prk, info []byte, l int) ([]byte, error) {
	digestSize := DigestSize(newHash)
	if !SkipValidation && l > 255*digestSize {
		return nil, &ErrInvalidLength{Field: "output length", Got: l, Bound: 255 * digestSize, BoundDir: "max"}
	}
	r := xhkdf.Expand(newHash, prk, info)
	out := make([]byte, l)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hkdf: expand: %w", err)
	}
	return out, nil
}
