package chain

import "fmt"

// New dispatches on variant and builds the matching concrete Chain
// implementation, the "variant tag, not a class hierarchy" capability
// dispatch spec.md §9 calls for.
func New(variant Variant, opts Options) (Chain, error) {
	switch variant {
	case VariantPRG16, VariantPRG24, VariantPRG32:
		return NewPRGChain(variant, opts)
	case VariantShake128, VariantShake256, VariantAscon:
		return NewXDRBGChain(variant, opts)
	case VariantHKDFSHA256, VariantHKDFSHA3256, VariantHKDFSHA512, VariantHKDFSHA3512:
		return NewHKDFChain(variant, opts)
	default:
		return nil, fmt.Errorf("chain: unrecognised variant %q", variant)
	}
}
