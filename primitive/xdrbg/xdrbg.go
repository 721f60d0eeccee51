// Package xdrbg implements the Kelsey-Lucks-Müller XDRBG construction: a
// deterministic random bit generator built from any extendable-output
// function (XOF).
//
// [1] Kelsey, Lucks & Müller, "XDRBG: A Proposed Deterministic Random Bit
// Generator Based on Any XOF", IACR ToSC 2024.1.
package xdrbg

import "fmt"

// SkipValidation disables parameter bounds checks; see primitive/prg for the
// rationale. Production code paths must leave it false.
var SkipValidation = false

// XOF is the capability abstraction spec.md §9 calls for: a single encoding
// pipeline (Encode) feeding one of two back-ends. SHAKE-style sponges
// implement it with an incremental Write/Read pair; Ascon implements it with
// a one-shot Squeeze over the full encoded message.
type XOF interface {
	// Name identifies the XOF for variant lookups and error messages.
	Name() string
	// Squeeze absorbs encoded in full and returns n fresh output bytes. Each
	// call is independent: implementations keep no state between calls, so
	// one XOF value may be reused across calls.
	Squeeze(encoded []byte, n int) []byte
}

// Variant describes the size parameters of one XDRBG instantiation, as in
// spec.md §4.2's table.
type Variant struct {
	StateSize      int // bytes
	MinSeedInit    int // bytes, minimum seed for Instantiate
	MinSeedReseed  int // bytes, minimum seed for Reseed
	MaxGenerateSum int // bytes, max(state_size + L) for one Generate call
}

const maxAlpha = 84

var variants = map[string]Variant{
	"shake128": {StateSize: 32, MinSeedInit: 24, MinSeedReseed: 16, MaxGenerateSum: 304},
	"shake256": {StateSize: 64, MinSeedInit: 48, MinSeedReseed: 32, MaxGenerateSum: 344},
	"ascon":    {StateSize: 32, MinSeedInit: 24, MinSeedReseed: 16, MaxGenerateSum: 256},
}

// VariantFor looks up the size table for a XOF name ("shake128", "shake256"
// or "ascon").
func VariantFor(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, &ErrUnsupportedVariant{Name: name}
	}
	return v, nil
}

// ErrUnsupportedVariant is raised for an unrecognised XOF name.
type ErrUnsupportedVariant struct{ Name string }

func (e *ErrUnsupportedVariant) Error() string {
	return fmt.Sprintf("xdrbg: unsupported xof variant %q", e.Name)
}

// ErrInvalidLength is raised by parameter validation (spec.md §4.2).
type ErrInvalidLength struct {
	Field    string
	Got      int
	Bound    int
	BoundDir string // "min" or "max"
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("xdrbg: %s is %d bytes, %s bound is %d", e.Field, e.Got, e.BoundDir, e.Bound)
}

// encode computes ENCODE(S, α, n) = S ∥ α ∥ (85n+|α|) per spec.md §4.2,
// serialising the trailing integer big-endian in the minimum number of bytes
// needed to represent it (zero bytes when the value is zero).
func encode(s, alpha []byte, n int) []byte {
	v := 85*n + len(alpha)
	out := make([]byte, 0, len(s)+len(alpha)+8)
	out = append(out, s...)
	out = append(out, alpha...)
	return append(out, minimalBigEndian(v)...)
}

func minimalBigEndian(v int) []byte {
	if v == 0 {
		return nil
	}
	var buf [8]byte
	i := 8
	for v > 0 {
		i--
		buf[i] = byte(v)
		v >>= 8
	}
	return buf[i:]
}

func validateAlpha(alpha []byte) error {
	if !SkipValidation && len(alpha) > maxAlpha {
		return &ErrInvalidLength{Field: "alpha", Got: len(alpha), Bound: maxAlpha, BoundDir: "max"}
	}
	return nil
}

// Instantiate computes S0 = XOF(ENCODE(seed, alpha, 0))[:state_size]
// (spec.md §4.2).
func Instantiate(xof XOF, seed, alpha []byte) ([]byte, error) {
	v, err := VariantFor(xof.Name())
	if err != nil {
		return nil, err
	}
	if !SkipValidation && len(seed) < v.MinSeedInit {
		return nil, &ErrInvalidLength{Field: "seed", Got: len(seed), Bound: v.MinSeedInit, BoundDir: "min"}
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	return xof.Squeeze(encode(seed, alpha, 0), v.StateSize), nil
}

// Reseed computes S' = XOF(ENCODE(S ∥ seed, alpha, 1))[:state_size], folding
// the current state into the encoded input (the "sound" form; see unsound
// for the detector-only stateless form).
func Reseed(xof XOF, state, seed, alpha []byte) ([]byte, error) {
	v, err := VariantFor(xof.Name())
	if err != nil {
		return nil, err
	}
	if !SkipValidation && len(seed) < v.MinSeedReseed {
		return nil, &ErrInvalidLength{Field: "seed", Got: len(seed), Bound: v.MinSeedReseed, BoundDir: "min"}
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	combined := make([]byte, 0, len(state)+len(seed))
	combined = append(combined, state...)
	combined = append(combined, seed...)
	return xof.Squeeze(encode(combined, alpha, 1), v.StateSize), nil
}

// Generate computes XOF(ENCODE(S, alpha, 2)) of length state_size+L,
// returning (S', out) where S' is the first state_size bytes.
func Generate(xof XOF, state []byte, l int, alpha []byte) (newState, out []byte, err error) {
	v, err := VariantFor(xof.Name())
	if err != nil {
		return nil, nil, err
	}
	total := v.StateSize + l
	if !SkipValidation && total > v.MaxGenerateSum {
		return nil, nil, &ErrInvalidLength{Field: "state_size+L", Got: total, Bound: v.MaxGenerateSum, BoundDir: "max"}
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, nil, err
	}
	raw := xof.Squeeze(encode(state, alpha, 2), total)
	return raw[:v.StateSize], raw[v.StateSize:], nil
}
