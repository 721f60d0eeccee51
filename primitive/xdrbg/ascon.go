package xdrbg

import "github.com/prateekb/keychains/internal/ascon"

// asconXOF adapts the one-shot internal/ascon.XOF digest function to the XOF
// capability interface, the "Ascon back-end" half of spec.md §9's design
// note: no incremental absorb/squeeze is needed because Ascon-Xof is always
// invoked over the whole encoded message at once.
type asconXOF struct{}

// NewAscon returns a XOF for Ascon-Xof.
func NewAscon() XOF { return asconXOF{} }

func (asconXOF) Name() string { return "ascon" }

func (asconXOF) Squeeze(encoded []byte, n int) []byte {
	return ascon.XOF(encoded, n)
}
