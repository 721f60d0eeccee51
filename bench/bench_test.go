package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeMeanAndStdDev(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	samples := []Sample{
		{Duration: 10 * time.Millisecond},
		{Duration: 20 * time.Millisecond},
		{Duration: 30 * time.Millisecond},
	}
	result := Summarize("test", samples, 0.95)
	is.Equal(3, result.Trials)
	is.Equal(20*time.Millisecond, result.Mean)
	is.True(result.StdDev > 0)
	is.True(result.ConfidenceInterval[0] <= result.Mean)
	is.True(result.ConfidenceInterval[1] >= result.Mean)
}

func TestSummarizeEmptySamples(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	result := Summarize("empty", nil, 0.95)
	is.Equal(0, result.Trials)
	is.Equal(time.Duration(0), result.Mean)
}

func TestBenchmarkInstantiatePropagatesError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	calls := 0
	_, err := BenchmarkInstantiate("failing", func() error {
		calls++
		if calls == 2 {
			return errBoom
		}
		return nil
	}, 5, 0.95)
	is.Error(err)
	is.Equal(2, calls)
}

func TestBenchmarkUpdateCountsAllTrials(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	calls := 0
	result, err := BenchmarkUpdate("counting", func() error {
		calls++
		return nil
	}, 7, 0.90)
	is.NoError(err)
	is.Equal(7, calls)
	is.Equal(7, result.Trials)
}

var errBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }
