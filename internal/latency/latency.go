// Package latency summarises per-line decode timings.
package latency

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary contains descriptive statistics over a set of durations.
type Summary struct {
	N      int
	Mean   time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
	P50    time.Duration
	P90    time.Duration
	P99    time.Duration
}

// Describe computes a Summary. An empty sample yields the zero Summary.
func Describe(samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(samples))
	for i, d := range samples {
		sorted[i] = float64(d)
	}
	sort.Float64s(sorted)

	s := Summary{
		N:    len(sorted),
		Mean: time.Duration(stat.Mean(sorted, nil)),
		Min:  time.Duration(sorted[0]),
		Max:  time.Duration(sorted[len(sorted)-1]),
		P50:  quantile(0.50, sorted),
		P90:  quantile(0.90, sorted),
		P99:  quantile(0.99, sorted),
	}
	if len(sorted) > 1 {
		s.StdDev = time.Duration(stat.StdDev(sorted, nil))
	}
	return s
}

func quantile(p float64, sorted []float64) time.Duration {
	return time.Duration(stat.Quantile(p, stat.Empirical, sorted, nil))
}

// String renders the summary on one line.
func (s Summary) String() string {
	if s.N == 0 {
		return "n=0"
	}
	return fmt.Sprintf("n=%d mean=%v stddev=%v p50=%v p90=%v p99=%v max=%v",
		s.N, s.Mean, s.StdDev, s.P50, s.P90, s.P99, s.Max)
}

// Recorder accumulates samples. The zero value is ready to use.
// It is not safe for concurrent use.
type Recorder struct {
	samples []time.Duration
}

// Observe adds one sample.
func (r *Recorder) Observe(d time.Duration) {
	r.samples = append(r.samples, d)
}

// Time runs fn and records its wall-clock duration.
func (r *Recorder) Time(fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	r.Observe(d)
	return d
}

// Summary describes the samples observed so far.
func (r *Recorder) Summary() Summary {
	return Describe(r.samples)
}
