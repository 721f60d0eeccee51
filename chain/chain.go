// Package chain implements the three forward-secure key-chain state
// machines of spec.md §4.5: each wraps one cryptographic primitive behind a
// uniform two-operation capability (Instantiate, Update), dispatching on a
// variant tag rather than a class hierarchy (spec.md §9's polymorphism
// design note).
package chain

import (
	"errors"
	"fmt"

	"github.com/prateekb/keychains/store"
)

// Variant is one of the ten primitive-variant tags from spec.md §3.
type Variant string

const (
	VariantPRG16       Variant = "prg16"
	VariantPRG24       Variant = "prg24"
	VariantPRG32       Variant = "prg32"
	VariantShake128    Variant = "shake128"
	VariantShake256    Variant = "shake256"
	VariantAscon       Variant = "ascon"
	VariantHKDFSHA256  Variant = "hkdf-sha256"
	VariantHKDFSHA3256 Variant = "hkdf-sha3-256"
	VariantHKDFSHA512  Variant = "hkdf-sha512"
	VariantHKDFSHA3512 Variant = "hkdf-sha3-512"
)

// Slot maps a variant tag to its StateStore slot name (spec.md §6).
func (v Variant) Slot() string {
	switch v {
	case VariantPRG16:
		return "prg_16"
	case VariantPRG24:
		return "prg_24"
	case VariantPRG32:
		return "prg_32"
	case VariantShake128:
		return "shake128"
	case VariantShake256:
		return "shake256"
	case VariantAscon:
		return "ascon"
	case VariantHKDFSHA256:
		return "hkdf_sha256"
	case VariantHKDFSHA3256:
		return "hkdf_sha3_256"
	case VariantHKDFSHA512:
		return "hkdf_sha512"
	case VariantHKDFSHA3512:
		return "hkdf_sha3_512"
	default:
		return string(v)
	}
}

// ErrNotInstantiated is returned by Update when called before Instantiate
// (spec.md §4.5's Uninstantiated/Ready state machine).
var ErrNotInstantiated = errors.New("chain: update called before instantiate")

// ErrStorageFailure wraps a persistence adapter failure; it is surfaced to
// the caller and is never swallowed (spec.md §4.5, §5).
type ErrStorageFailure struct {
	Slot string
	Err  error
}

func (e *ErrStorageFailure) Error() string {
	return fmt.Sprintf("chain: failed to persist state for slot %q: %v", e.Slot, e.Err)
}

func (e *ErrStorageFailure) Unwrap() error { return e.Err }

// Chain is the uniform capability every key-chain variant exposes: a once
// instantiate, repeatedly update state machine (spec.md §4.5).
type Chain interface {
	// Variant reports which of the ten primitive variants this chain wraps.
	Variant() Variant
	// Instantiate derives the initial state S0 from seed. It may be called
	// only once per chain instance.
	Instantiate(seed []byte) (state []byte, err error)
	// Update folds x into the current state, returning the next state and
	// a fresh output key. It returns ErrNotInstantiated if Instantiate has
	// not yet succeeded.
	Update(x, state []byte) (newState, out []byte, err error)
}

// persistIfEnabled writes newState to st under variant's slot when
// persistence is requested, wrapping any failure as ErrStorageFailure so it
// propagates rather than being swallowed (spec.md §4.5, §5 ordering
// guarantee).
func persistIfEnabled(st store.StateStore, persist bool, v Variant, newState []byte) error {
	if !persist || st == nil {
		return nil
	}
	if err := st.Put(v.Slot(), newState); err != nil {
		return &ErrStorageFailure{Slot: v.Slot(), Err: err}
	}
	return nil
}
