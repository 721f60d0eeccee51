package chain

import (
	"fmt"
	"sync"

	"github.com/prateekb/keychains/primitive/xdrbg"
	"github.com/prateekb/keychains/store"
)

// XDRBGChain wraps primitive/xdrbg behind the Chain capability: instantiate
// seeds the sponge/permutation state, update reseeds under the current
// state before generating the next output/state pair (spec.md §4.2, §4.5).
type XDRBGChain struct {
	variant Variant
	xof     xdrbg.XOF
	outLen  int
	store   store.StateStore
	persist bool

	mu    sync.Mutex
	ready bool
}

// outLenFor returns the per-Update output length spec.md §4.2's table
// assigns each XDRBG variant: 16 bytes for shake128 and ascon, 32 for
// shake256.
func outLenFor(variant Variant) int {
	if variant == VariantShake256 {
		return 32
	}
	return 16
}

// NewXDRBGChain builds an XDRBGChain for one of VariantShake128,
// VariantShake256 or VariantAscon.
func NewXDRBGChain(variant Variant, opts Options) (*XDRBGChain, error) {
	var xof xdrbg.XOF
	switch variant {
	case VariantShake128:
		xof = xdrbg.NewShake128()
	case VariantShake256:
		xof = xdrbg.NewShake256()
	case VariantAscon:
		xof = xdrbg.NewAscon()
	default:
		return nil, fmt.Errorf("chain: %q is not an XDRBG variant", variant)
	}
	return &XDRBGChain{
		variant: variant,
		xof:     xof,
		outLen:  outLenFor(variant),
		store:   opts.Store,
		persist: opts.Persist,
	}, nil
}

// Variant reports which XOF back-end this chain wraps.
func (c *XDRBGChain) Variant() Variant { return c.variant }

// Instantiate computes S0 = xdrbg.Instantiate(xof, seed, nil).
func (c *XDRBGChain) Instantiate(seed []byte) ([]byte, error) {
	state, err := xdrbg.Instantiate(c.xof, seed, nil)
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

// Update reseeds under x and the current state, then generates the next
// state/output pair.
func (c *XDRBGChain) Update(x, state []byte) (newState, out []byte, err error) {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return nil, nil, ErrNotInstantiated
	}
	reseeded, err := xdrbg.Reseed(c.xof, state, x, nil)
	if err != nil {
		return nil, nil, err
	}
	newState, out, err = xdrbg.Generate(c.xof, reseeded, c.outLen, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := persistIfEnabled(c.store, c.persist, c.variant, newState); err != nil {
		return nil, nil, err
	}
	return newState, out, nil
}
