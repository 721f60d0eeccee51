// Package bench implements the timing and statistics harness spec.md §1
// and §2 place out of core scope and summarise only: it times chain
// operations and reports mean, standard deviation and a confidence
// interval, replacing the reference's process-wide accumulator lists with
// per-run result structs (spec.md §9's "shared mutable counters/lists" note).
package bench

import (
	"math"
	"time"
)

// Sample is one successful timed invocation.
type Sample struct {
	Duration time.Duration
}

// Result summarises a batch of Samples: mean, standard deviation, and a
// two-sided confidence interval around the mean, grounded on
// original_source/keychains/utils.py's
// get_standard_deviation_of_execution_times /
// get_confidence_intervals_of_execution_times.
type Result struct {
	Label              string
	Trials             int
	Mean               time.Duration
	StdDev             time.Duration
	ConfidenceLevel    float64
	ConfidenceInterval [2]time.Duration
}

// zCritical is the two-sided standard-normal critical value for a handful
// of commonly requested confidence levels, avoiding a dependency on an
// inverse-normal-CDF routine for just this lookup.
var zCritical = map[float64]float64{
	0.90: 1.6448536269514722,
	0.95: 1.9599639845400545,
	0.99: 2.5758293035489004,
}

// Summarize computes a Result over samples at the given confidenceLevel
// (one of 0.90, 0.95 or 0.99).
func Summarize(label string, samples []Sample, confidenceLevel float64) Result {
	n := len(samples)
	if n == 0 {
		return Result{Label: label, ConfidenceLevel: confidenceLevel}
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s.Duration)
	}
	mean := sum / float64(n)

	var variance float64
	if n > 1 {
		var sumSquares float64
		for _, s := range samples {
			d := float64(s.Duration) - mean
			sumSquares += d * d
		}
		variance = sumSquares / float64(n-1)
	}
	stddev := math.Sqrt(variance)

	z := zCritical[confidenceLevel]
	marginOfError := z * (stddev / math.Sqrt(float64(n)))

	return Result{
		Label:           label,
		Trials:          n,
		Mean:            time.Duration(mean),
		StdDev:          time.Duration(stddev),
		ConfidenceLevel: confidenceLevel,
		ConfidenceInterval: [2]time.Duration{
			time.Duration(mean - marginOfError),
			time.Duration(mean + marginOfError),
		},
	}
}

// Op is a single chain operation to time: Instantiate or Update, wrapped so
// the harness need not import package chain directly.
type Op func() error

// Time runs op trials times and records each call's duration. The first
// failing op aborts the whole benchmark run: Time returns its error and
// discards the samples collected so far (spec.md §7: no error is retried or
// swallowed).
func Time(op Op, trials int) ([]Sample, error) {
	samples := make([]Sample, 0, trials)
	for i := 0; i < trials; i++ {
		start := time.Now()
		if err := op(); err != nil {
			return nil, err
		}
		samples = append(samples, Sample{Duration: time.Since(start)})
	}
	return samples, nil
}

// BenchmarkInstantiate times trials calls to instantiate and summarises the
// result (spec.md §2's Benchmark harness, "instantiation").
func BenchmarkInstantiate(label string, instantiate Op, trials int, confidenceLevel float64) (Result, error) {
	samples, err := Time(instantiate, trials)
	if err != nil {
		return Result{}, err
	}
	return Summarize(label, samples, confidenceLevel), nil
}

// BenchmarkUpdate times trials calls to update and summarises the result
// (spec.md §2's Benchmark harness, "chain generation").
func BenchmarkUpdate(label string, update Op, trials int, confidenceLevel float64) (Result, error) {
	samples, err := Time(update, trials)
	if err != nil {
		return Result{}, err
	}
	return Summarize(label, samples, confidenceLevel), nil
}
