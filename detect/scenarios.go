package detect

import (
	"fmt"
	"hash"

	"github.com/prateekb/keychains/primitive/hkdf"
	"github.com/prateekb/keychains/primitive/prg"
	"github.com/prateekb/keychains/primitive/xdrbg"
	"github.com/prateekb/keychains/unsound"
)

// Scenario names the minimum coverage spec.md §4.6 requires per primitive
// and idealisation.
type Scenario struct {
	Label     string
	SeedLen   int
	Transform Transform
}

// HKDFSoundSeedToPRK builds the "seed → PRK" scenario: fixed salt, varying
// IKM (spec.md §4.6).
func HKDFSoundSeedToPRK(newHash func() hash.Hash) Scenario {
	digestSize := hkdf.DigestSize(newHash)
	return Scenario{
		Label:   "hkdf-sound-seed-to-prk",
		SeedLen: digestSize,
		Transform: func(seed []byte) ([]byte, error) {
			return hkdf.Extract(newHash, nil, seed)
		},
	}
}

// HKDFSoundPRKToOKM builds the "PRK → OKM" scenario: each draw stands in
// for a fresh PRK, expanded with fixed empty info.
func HKDFSoundPRKToOKM(newHash func() hash.Hash) Scenario {
	digestSize := hkdf.DigestSize(newHash)
	return Scenario{
		Label:   "hkdf-sound-prk-to-okm",
		SeedLen: digestSize,
		Transform: func(prk []byte) ([]byte, error) {
			return hkdf.Expand(newHash, prk, nil, digestSize)
		},
	}
}

// XDRBGSoundInstantiate builds the "seed → S0" scenario.
func XDRBGSoundInstantiate(xof xdrbg.XOF) (Scenario, error) {
	v, err := xdrbg.VariantFor(xof.Name())
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Label:   "xdrbg-sound-instantiate-" + xof.Name(),
		SeedLen: v.MinSeedInit,
		Transform: func(seed []byte) ([]byte, error) {
			return xdrbg.Instantiate(xof, seed, nil)
		},
	}, nil
}

// XDRBGSoundReseed builds the "seed → S'" scenario against a fixed prior
// state, the sound form that folds state into the input (spec.md §4.3).
func XDRBGSoundReseed(xof xdrbg.XOF, fixedState []byte) (Scenario, error) {
	v, err := xdrbg.VariantFor(xof.Name())
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Label:   "xdrbg-sound-reseed-" + xof.Name(),
		SeedLen: v.MinSeedReseed,
		Transform: func(seed []byte) ([]byte, error) {
			return xdrbg.Reseed(xof, fixedState, seed, nil)
		},
	}, nil
}

// XDRBGUnsoundReseed builds the "seed → S'" scenario under the stateless
// reseed that omits prior state (spec.md §4.3, §4.6).
func XDRBGUnsoundReseed(xof xdrbg.XOF) (Scenario, error) {
	v, err := xdrbg.VariantFor(xof.Name())
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Label:   "xdrbg-unsound-reseed-" + xof.Name(),
		SeedLen: v.MinSeedReseed,
		Transform: func(seed []byte) ([]byte, error) {
			return unsound.XDRBGReseed(xof, seed, nil)
		},
	}, nil
}

// PRGSoundRefresh builds the "seed → S'" scenario against a fixed prior
// state.
func PRGSoundRefresh(lambda int, fixedState []byte) Scenario {
	return Scenario{
		Label:   "prg-sound-refresh",
		SeedLen: lambda,
		Transform: func(seed []byte) ([]byte, error) {
			return prg.Refresh(fixedState, seed)
		},
	}
}

// PRGUnsoundRefresh builds the "seed → S'" scenario under the stateless
// refresh that treats the seed alone as the AES key (spec.md §4.3, §4.6).
func PRGUnsoundRefresh(lambda int) Scenario {
	return Scenario{
		Label:   "prg-unsound-refresh",
		SeedLen: lambda,
		Transform: func(seed []byte) ([]byte, error) {
			return unsound.PRGRefresh(seed)
		},
	}
}

// RunScenario draws and evaluates the given scenario. n overrides
// DefaultTrials when non-zero, so tests can run small samples quickly.
func RunScenario(s Scenario, n int, draw SeedSource) (*Report, error) {
	trials := n
	if trials == 0 {
		trials = DefaultTrials
	}
	return Run(s.Label, trials, s.SeedLen, draw, s.Transform)
}

// ChainStep advances one chain step, mirroring chain.Chain.Update's shape
// without depending on package chain (which wires a StateStore the detector
// has no use for).
type ChainStep func(x, state []byte) (newState, out []byte, err error)

// RunChain exercises the "S_i → out_i across a [next|generate]-chain"
// coverage spec.md §4.6 requires: it drives a single chain instance through
// trials updates with fresh x drawn from drawX each step, and checks the
// resulting outputs never collide with one another.
func RunChain(label string, trials, xLen int, initialState []byte, drawX SeedSource, step ChainStep) (*Report, error) {
	seen := make(map[string]int, trials)
	state := initialState
	for i := 0; i < trials; i++ {
		x, err := drawX(xLen)
		if err != nil {
			return nil, fmt.Errorf("detect: %s: draw x: %w", label, err)
		}
		newState, out, err := step(x, state)
		if err != nil {
			return nil, fmt.Errorf("detect: %s: step: %w", label, err)
		}
		key := string(out)
		if prior, collided := seen[key]; collided {
			return nil, &ErrCollisionDetected{
				Output:    out,
				SeedA:     []byte(fmt.Sprintf("step-%d", prior)),
				SeedB:     []byte(fmt.Sprintf("step-%d", i)),
				Iteration: i,
			}
		}
		seen[key] = i
		state = newState
	}
	return &Report{Label: label, Trials: trials}, nil
}
