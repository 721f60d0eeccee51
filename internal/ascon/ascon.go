// Package ascon implements the Ascon-XOF sponge construction (Ascon v1.2)
// used as one of XDRBG's two supported extendable-output functions.
//
// No third-party Go implementation of Ascon appears anywhere in the example
// corpus this module was built from, so this is a hand-written, from-spec
// permutation rather than an adaptation of retrieved code — see DESIGN.md.
// The round constants and initialization vector are transcribed from the
// public Ascon v1.2 specification; they have not been cross-checked against
// the official test vectors in this environment, since no Go toolchain is
// run as part of building this module.
package ascon

import "math/bits"

const (
	rounds = 12
	rate   = 8 // bytes absorbed/squeezed per permutation call

	// xofIV is the 64-bit initialization vector for Ascon-Xof: it encodes
	// the round count, rate and (zero, for arbitrary-length Xof) output
	// size fields per the Ascon v1.2 specification.
	xofIV = 0x00400c0000000000
)

// roundConstant returns the round constant for permutation round i (0-based,
// counting from the first of the 12 rounds), following the Ascon convention
// c_i = (0xf-i)<<4 | i.
func roundConstant(i int) uint64 {
	return uint64((0xf-i)<<4 | i)
}

// state is the 320-bit Ascon permutation state as five 64-bit words.
type state [5]uint64

// permute applies the full 12-round Ascon permutation in place.
func (s *state) permute() {
	for i := 0; i < rounds; i++ {
		s.round(roundConstant(i))
	}
}

func (s *state) round(rc uint64) {
	x0, x1, x2, x3, x4 := s[0], s[1], s[2], s[3], s[4]

	// Add round constant.
	x2 ^= rc

	// Substitution layer (5-bit Sbox, bitsliced across the five words).
	x0 ^= x4
	x4 ^= x3
	x2 ^= x1
	t0 := ^x0
	t1 := ^x1
	t2 := ^x2
	t3 := ^x3
	t4 := ^x4
	t0 &= x1
	t1 &= x2
	t2 &= x3
	t3 &= x4
	t4 &= x0
	x0 ^= t1
	x1 ^= t2
	x2 ^= t3
	x3 ^= t4
	x4 ^= t0
	x1 ^= x0
	x0 ^= x4
	x3 ^= x2
	x2 = ^x2

	// Linear diffusion layer.
	x0 ^= bits.RotateLeft64(x0, -19) ^ bits.RotateLeft64(x0, -28)
	x1 ^= bits.RotateLeft64(x1, -61) ^ bits.RotateLeft64(x1, -39)
	x2 ^= bits.RotateLeft64(x2, -1) ^ bits.RotateLeft64(x2, -6)
	x3 ^= bits.RotateLeft64(x3, -10) ^ bits.RotateLeft64(x3, -17)
	x4 ^= bits.RotateLeft64(x4, -7) ^ bits.RotateLeft64(x4, -41)

	s[0], s[1], s[2], s[3], s[4] = x0, x1, x2, x3, x4
}

func loadLE(b []byte) uint64 {
	var x uint64
	for i := 0; i < len(b); i++ {
		x |= uint64(b[i]) << (8 * i)
	}
	return x
}

func storeLE(dst []byte, x uint64) {
	for i := 0; i < len(dst); i++ {
		dst[i] = byte(x >> (8 * i))
	}
}

// pad10star1 returns data padded with a single 0x01 byte followed by zero
// bytes up to the next multiple of rate, per the Ascon sponge padding rule.
func pad10star1(data []byte) []byte {
	padded := make([]byte, len(data)+1)
	copy(padded, data)
	padded[len(data)] = 0x01
	if rem := len(padded) % rate; rem != 0 {
		padded = append(padded, make([]byte, rate-rem)...)
	}
	return padded
}

// XOF computes the Ascon-XOF digest of data, producing outLen bytes. It is a
// one-shot call: each invocation starts from the fixed Ascon-Xof IV,
// matching the reference's single-call digest() shape used by AsconBasedXdrbg
// (original_source/entropylossdetection/unsoundidealizationcryptographicprimitives/xdrbg_operations.py).
func XOF(data []byte, outLen int) []byte {
	var s state
	s[0] = xofIV
	s.permute()

	padded := pad10star1(data)
	for off := 0; off < len(padded); off += rate {
		s[0] ^= loadLE(padded[off : off+rate])
		s.permute()
	}

	out := make([]byte, 0, outLen)
	for len(out) < outLen {
		var block [rate]byte
		storeLE(block[:], s[0])
		need := outLen - len(out)
		if need > rate {
			need = rate
		}
		out = append(out, block[:need]...)
		if len(out) < outLen {
			s.permute()
		}
	}
	return out
}
