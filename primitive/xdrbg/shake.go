package xdrbg

import "golang.org/x/crypto/sha3"

// shakeXOF adapts golang.org/x/crypto/sha3's incremental ShakeHash (Write to
// absorb, Read to squeeze) to the XOF capability interface, per the "SHAKE
// back-end" half of spec.md §9's design note.
type shakeXOF struct {
	name    string
	newHash func() sha3.ShakeHash
}

// NewShake128 returns a XOF for SHAKE-128, the smallest XDRBG variant.
func NewShake128() XOF { return shakeXOF{name: "shake128", newHash: sha3.NewShake128} }

// NewShake256 returns a XOF for SHAKE-256.
func NewShake256() XOF { return shakeXOF{name: "shake256", newHash: sha3.NewShake256} }

func (s shakeXOF) Name() string { return s.name }

func (s shakeXOF) Squeeze(encoded []byte, n int) []byte {
	h := s.newHash()
	_, _ = h.Write(encoded)
	out := make([]byte, n)
	_, _ = h.Read(out)
	return out
}
