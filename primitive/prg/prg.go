// Package prg implements the Barak-Halevi style AES-CTR pseudorandom
// generator used as the innermost primitive of the PRG key chain.
//
// Ferguson, Schneier & Kohno, Cryptography Engineering, ISBN
// 978-0-470-47424-2, describes the same counter-mode rekeying construction
// under the Fortuna generator.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// SkipValidation disables parameter-length checks. It exists only so
// benchmark and fuzz code can avoid the overhead of a bounds check on every
// call; production code paths must leave it false.
var SkipValidation = false

// nonceRefresh is the 12-byte nonce used by Refresh. The leading byte 0x96
// and the 0x0d filler are carried over unchanged from the reference
// implementation (spec.md §6 bit-exactness requirement).
var nonceRefresh = [12]byte{0x96, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d}

// nonceNext is Next's nonce. The reference source does not fully specify it
// (spec.md §9 Open Question); this implementation picks a nonce that differs
// from nonceRefresh only in its leading byte so the two counter-mode streams
// can never collide for the same key.
var nonceNext = [12]byte{0x6e, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d, 0x0d}

// ErrInvalidLength is returned when a state or input parameter does not
// match the expected security-parameter length.
type ErrInvalidLength struct {
	Field    string
	Got      int
	Expected int
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("prg: %s is %d bytes, expected %d", e.Field, e.Got, e.Expected)
}

// ErrUnsupportedLambda is returned when λ is not one of 16, 24 or 32.
type ErrUnsupportedLambda struct {
	Lambda int
}

func (e *ErrUnsupportedLambda) Error() string {
	return fmt.Sprintf("prg: unsupported security parameter lambda=%d (want 16, 24 or 32)", e.Lambda)
}

// ValidLambda reports whether lambda is a supported AES key length.
func ValidLambda(lambda int) bool {
	return lambda == 16 || lambda == 24 || lambda == 32
}

// aesCTRZeroes runs AES in counter mode under key, with the given 12-byte
// nonce and a 32-bit big-endian counter starting at 0, encrypting n zero
// bytes. This mirrors the reference's
// aes_counter_mode_as_prg_invoked_from_prg_refresh helper, generalised to
// share code between Refresh and Next.
func aesCTRZeroes(key []byte, nonce [12]byte, n int) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("prg: %w", err)
	}
	iv := make([]byte, 16)
	copy(iv, nonce[:])
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, n)
	stream.XORKeyStream(out, out)
	return out, nil
}

// xorBytes returns a ⊕ b. a and b must be the same length.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Refresh computes S' = AES-CTR(key = S⊕X)(0^2λ)[:λ] (spec.md §4.1). Both S
// and X must be exactly λ bytes, and λ must be 16, 24 or 32.
func Refresh(state, input []byte) ([]byte, error) {
	if !SkipValidation {
		if !ValidLambda(len(state)) {
			return nil, &ErrUnsupportedLambda{Lambda: len(state)}
		}
		if len(input) != len(state) {
			return nil, &ErrInvalidLength{Field: "input", Got: len(input), Expected: len(state)}
		}
	}
	key := xorBytes(state, input)
	lambda := len(state)
	out, err := aesCTRZeroes(key, nonceRefresh, 2*lambda)
	if err != nil {
		return nil, err
	}
	return out[:lambda], nil
}

// Next computes (out, S') = AES-CTR(key = S)(0^2λ), splitting the first λ
// bytes as the fresh output key and the next λ as the new state (spec.md
// §4.1, Open Question resolved in SPEC_FULL.md §6).
func Next(state []byte) (out, newState []byte, err error) {
	if !SkipValidation {
		if !ValidLambda(len(state)) {
			return nil, nil, &ErrUnsupportedLambda{Lambda: len(state)}
		}
	}
	lambda := len(state)
	raw, err := aesCTRZeroes(state, nonceNext, 2*lambda)
	if err != nil {
		return nil, nil, err
	}
	return raw[:lambda], raw[lambda:], nil
}
