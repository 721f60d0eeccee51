package detect

import (
	"crypto/sha256"
	"testing"

	"github.com/prateekb/keychains/primitive/prg"
	"github.com/prateekb/keychains/primitive/xdrbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialDraw() SeedSource {
	counter := 0
	return func(n int) ([]byte, error) {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(counter*31 + i*7 + 1)
		}
		counter++
		return b, nil
	}
}

func TestRunReportsNoCollisionsForDistinctInputs(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	report, err := Run("identity", 64, 4, sequentialDraw(), func(seed []byte) ([]byte, error) {
		return seed, nil
	})
	is.NoError(err)
	is.Equal(64, report.Trials)
}

func TestRunDetectsCollision(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	_, err := Run("constant", 8, 4, sequentialDraw(), func(seed []byte) ([]byte, error) {
		return []byte{0xaa}, nil // every input maps to the same output
	})
	is.Error(err)
	var collision *ErrCollisionDetected
	is.ErrorAs(err, &collision)
}

func TestHKDFSoundScenarioHasNoCollisions(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	s := HKDFSoundSeedToPRK(sha256.New)
	report, err := RunScenario(s, 200, sequentialDraw())
	is.NoError(err)
	is.Equal(200, report.Trials)
}

func TestXDRBGUnsoundReseedScenarioBuilds(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	s, err := XDRBGUnsoundReseed(xdrbg.NewShake128())
	is.NoError(err)
	is.Equal(16, s.SeedLen)
	report, err := RunScenario(s, 100, sequentialDraw())
	is.NoError(err)
	is.Equal(100, report.Trials)
}

func TestPRGSoundRefreshScenario(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	s := PRGSoundRefresh(16, make([]byte, 16))
	report, err := RunScenario(s, 100, sequentialDraw())
	is.NoError(err)
	is.Equal(100, report.Trials)
}

func TestRunChainDetectsCollision(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	_, err := RunChain("constant-chain", 5, 4, make([]byte, 4), sequentialDraw(),
		func(x, state []byte) (newState, out []byte, err error) {
			return state, []byte{0x01}, nil
		})
	is.Error(err)
}

func TestRunChainPRGNextChain(t *testing.T) {
	t.Parallel()
	is := require.New(t)
	report, err := RunChain("prg-next-chain", 50, 16, make([]byte, 16), sequentialDraw(),
		func(x, state []byte) (newState, out []byte, err error) {
			folded, err := prg.Refresh(state, x)
			if err != nil {
				return nil, nil, err
			}
			out, newState, err = prg.Next(folded)
			return newState, out, err
		})
	is.NoError(err)
	is.Equal(50, report.Trials)
}
