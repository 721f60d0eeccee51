// Package detect implements the injectivity / entropy-loss harness of
// spec.md §4.6: it drives a primitive's single-step transform over N
// independent seeds and asserts the output-to-seed mapping never collides.
package detect

import (
	"encoding/hex"
	"fmt"
)

// DefaultTrials is the detector's default sample size (spec.md §4.6: N =
// 2^21). Tests configure a much smaller N to stay fast.
const DefaultTrials = 1 << 21

// Transform is one step of a primitive under a chosen idealisation: it
// consumes a seed (and whatever fixed context the mode requires) and
// produces an output whose injectivity against the seed is under test.
type Transform func(seed []byte) ([]byte, error)

// ErrCollisionDetected is raised when two distinct seeds map to the same
// output under a Transform (spec.md §7's CollisionDetected kind).
type ErrCollisionDetected struct {
	Output    []byte
	SeedA     []byte
	SeedB     []byte
	Iteration int
}

func (e *ErrCollisionDetected) Error() string {
	return fmt.Sprintf(
		"detect: collision at trial %d: output %s produced by both seed %s and seed %s",
		e.Iteration, hex.EncodeToString(e.Output), hex.EncodeToString(e.SeedA), hex.EncodeToString(e.SeedB),
	)
}

// SeedSource draws independent seeds of the requested byte length, standing
// in for the extractor collaborator (spec.md §6).
type SeedSource func(n int) ([]byte, error)

// Report summarises one completed run with no collisions found.
type Report struct {
	Label  string
	Trials int
}

// Run draws trials independent seedLen-byte seeds from draw, applies
// transform to each, and checks the output-to-seed mapping is injective. It
// returns a Report on success or an *ErrCollisionDetected on the first
// collision found (spec.md §4.6 steps 1-4).
func Run(label string, trials, seedLen int, draw SeedSource, transform Transform) (*Report, error) {
	seen := make(map[string][]byte, trials)
	for i := 0; i < trials; i++ {
		seed, err := draw(seedLen)
		if err != nil {
			return nil, fmt.Errorf("detect: %s: draw seed: %w", label, err)
		}
		out, err := transform(seed)
		if err != nil {
			return nil, fmt.Errorf("detect: %s: transform: %w", label, err)
		}
		key := string(out)
		if prior, collided := seen[key]; collided {
			return nil, &ErrCollisionDetected{
				Output:    out,
				SeedA:     prior,
				SeedB:     seed,
				Iteration: i,
			}
		}
		seen[key] = seed
	}
	return &Report{Label: label, Trials: trials}, nil
}
