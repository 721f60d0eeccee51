package chain

import (
	"fmt"
	"sync"

	"github.com/prateekb/keychains/primitive/prg"
	"github.com/prateekb/keychains/store"
)

// PRGChain wraps primitive/prg behind the Chain capability: instantiate
// folds the seed into an all-zero state, update re-keys under the current
// state before drawing the next output/state pair (spec.md §4.1, §4.5).
type PRGChain struct {
	variant Variant
	lambda  int
	store   store.StateStore
	persist bool

	mu    sync.Mutex
	ready bool
}

// NewPRGChain builds a PRGChain for one of VariantPRG16, VariantPRG24 or
// VariantPRG32.
func NewPRGChain(variant Variant, opts Options) (*PRGChain, error) {
	var lambda int
	switch variant {
	case VariantPRG16:
		lambda = 16
	case VariantPRG24:
		lambda = 24
	case VariantPRG32:
		lambda = 32
	default:
		return nil, fmt.Errorf("chain: %q is not a PRG variant", variant)
	}
	return &PRGChain{variant: variant, lambda: lambda, store: opts.Store, persist: opts.Persist}, nil
}

// Variant reports which PRG security parameter this chain wraps.
func (c *PRGChain) Variant() Variant { return c.variant }

// Instantiate computes S0 = prg.Refresh(0^λ, seed). seed must be exactly λ
// bytes.
func (c *PRGChain) Instantiate(seed []byte) ([]byte, error) {
	zero := make([]byte, c.lambda)
	state, err := prg.Refresh(zero, seed)
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

// Update folds x into state via prg.Refresh, then draws the next output and
// state via prg.Next.
func (c *PRGChain) Update(x, state []byte) (newState, out []byte, err error) {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return nil, nil, ErrNotInstantiated
	}
	folded, err := prg.Refresh(state, x)
	if err != nil {
		return nil, nil, err
	}
	out, newState, err = prg.Next(folded)
	if err != nil {
		return nil, nil, err
	}
	if err := persistIfEnabled(c.store, c.persist, c.variant, newState); err != nil {
		return nil, nil, err
	}
	return newState, out, nil
}
