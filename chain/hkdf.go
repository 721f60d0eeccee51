package chain

import (
	"fmt"
	"hash"
	"sync"

	"github.com/prateekb/keychains/primitive/hkdf"
	"github.com/prateekb/keychains/store"
)

// HKDFChain wraps primitive/hkdf behind the Chain capability: instantiate
// extracts-then-expands the seed into an initial state, update extracts a
// fresh PRK from x∥state before expanding twice the digest size and
// splitting it into the next state and the output key (spec.md §4.4, §4.5).
type HKDFChain struct {
	variant    Variant
	newHash    func() hash.Hash
	digestSize int
	store      store.StateStore
	persist    bool

	mu    sync.Mutex
	ready bool
}

func hkdfVariantName(v Variant) string {
	switch v {
	case VariantHKDFSHA256:
		return "hkdf-sha256"
	case VariantHKDFSHA3256:
		return "hkdf-sha3-256"
	case VariantHKDFSHA512:
		return "hkdf-sha512"
	case VariantHKDFSHA3512:
		return "hkdf-sha3-512"
	default:
		return string(v)
	}
}

// NewHKDFChain builds an HKDFChain for one of the four hkdf-* variants.
func NewHKDFChain(variant Variant, opts Options) (*HKDFChain, error) {
	newHash, err := hkdf.NewHashFunc(hkdfVariantName(variant))
	if err != nil {
		return nil, fmt.Errorf("chain: %q is not an HKDF variant: %w", variant, err)
	}
	return &HKDFChain{
		variant:    variant,
		newHash:    newHash,
		digestSize: hkdf.DigestSize(newHash),
		store:      opts.Store,
		persist:    opts.Persist,
	}, nil
}

// Variant reports which hash this chain's HKDF instantiation is built on.
func (c *HKDFChain) Variant() Variant { return c.variant }

// Instantiate computes S0 = hkdf.Expand(hkdf.Extract(nil, seed), nil,
// digest_size).
func (c *HKDFChain) Instantiate(seed []byte) ([]byte, error) {
	prk, err := hkdf.Extract(c.newHash, nil, seed)
	if err != nil {
		return nil, err
	}
	state, err := hkdf.Expand(c.newHash, prk, nil, c.digestSize)
	if err != nil {
		return nil, err
	}
	if err := persistIfEnabled(c.store, c.persist, c.variant, state); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	return state, nil
}

// Update extracts PRK = HKDF-Extract(nil, x∥state), expands 2*digest_size
// bytes, and splits the result into the next state and the output key.
func (c *HKDFChain) Update(x, state []byte) (newState, out []byte, err error) {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return nil, nil, ErrNotInstantiated
	}
	combined := make([]byte, 0, len(x)+len(state))
	combined = append(combined, x...)
	combined = append(combined, state...)
	prk, err := hkdf.Extract(c.newHash, nil, combined)
	if err != nil {
		return nil, nil, err
	}
	t, err := hkdf.Expand(c.newHash, prk, nil, 2*c.digestSize)
	if err != nil {
		return nil, nil, err
	}
	newState = t[:c.digestSize]
	out = t[c.digestSize:]
	if err := persistIfEnabled(c.store, c.persist, c.variant, newState); err != nil {
		return nil, nil, err
	}
	return newState, out, nil
}
