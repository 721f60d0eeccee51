// Package unsound implements the deliberately-incorrect "unsound
// idealisation" forms of PRG.Refresh and XDRBG.Reseed described in spec.md
// §4.3: each omits the current chain state from its input, so collisions on
// the seed alone collide the output regardless of chain history. These
// constructions exist only to give the injectivity detector (package
// detect) something to fail against; nothing else in this module may import
// this package for production key-chain use.
//
// Grounded on
// original_source/entropylossdetection/unsoundidealizationcryptographicprimitives/{prg,xdrbg}_operations.py,
// which keep the unsound forms in a dedicated sub-package specifically to
// keep them out of the sound primitive's call graph.
package unsound

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/prateekb/keychains/primitive/xdrbg"
)

// prgNonceRefresh mirrors primitive/prg's Refresh nonce; the unsound form
// reuses it since it targets the same AES-CTR construction, just without
// XORing in the prior state.
var prgNonceRefresh = [12]byte{0x96, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d}

// PRGRefresh computes S' = AES-CTR(key = seed)(0^2λ)[:λ], i.e. prg.Refresh
// with the current state omitted from the key (spec.md §4.3 / §4.6).
func PRGRefresh(seed []byte) ([]byte, error) {
	lambda := len(seed)
	block, err := aes.NewCipher(seed)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, 16)
	copy(iv, prgNonceRefresh[:])
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, 2*lambda)
	stream.XORKeyStream(out, out)
	return out[:lambda], nil
}

// XDRBGReseed computes S' = XOF(ENCODE(seed, alpha, 1))[:state_size], i.e.
// xdrbg.Reseed with the current state omitted from the encoded input
// (spec.md §4.3 / §4.6).
func XDRBGReseed(xof xdrbg.XOF, seed, alpha []byte) ([]byte, error) {
	v, err := xdrbg.VariantFor(xof.Name())
	if err != nil {
		return nil, err
	}
	return xof.Squeeze(encodeUnsound(seed, alpha, 1), v.StateSize), nil
}

// encodeUnsound duplicates xdrbg's unexported encode() so this package does
// not need to export it from primitive/xdrbg purely for the detector's
// benefit (spec.md §9: the unsound form is detector-only and must not widen
// the sound primitive's public surface).
func encodeUnsound(s, alpha []byte, n int) []byte {
	v := 85*n + len(alpha)
	out := make([]byte, 0, len(s)+len(alpha)+8)
	out = append(out, s...)
	out = append(out, alpha...)
	if v == 0 {
		return out
	}
	var buf [8]byte
	i := 8
	for v > 0 {
		i--
		buf[i] = byte(v)
		v >>= 8
	}
	return append(out, buf[i:]...)
}
