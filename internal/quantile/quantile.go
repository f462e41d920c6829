// Package quantile provides a small, unweighted percentile estimator used
// to summarize per-block latency samples gathered by the profiler. It
// keeps only the subset of a general-purpose sample/quantile toolkit this
// module actually needs: an append-only sample slice and the R8
// interpolation method for Percentile.
package quantile

import "sort"

// Samples is a growable, sortable collection of observed latencies in
// seconds.
type Samples struct {
	xs     []float64
	sorted bool
}

// Add appends one or more observations.
func (s *Samples) Add(v ...float64) {
	s.xs = append(s.xs, v...)
	s.sorted = false
}

// Len returns the number of observations recorded so far.
func (s *Samples) Len() int { return len(s.xs) }

func (s *Samples) sort() {
	if s.sorted {
		return
	}
	sort.Float64s(s.xs)
	s.sorted = true
}

// Bounds returns the minimum and maximum observed values.
func (s *Samples) Bounds() (min, max float64) {
	if len(s.xs) == 0 {
		return 0, 0
	}
	s.sort()
	return s.xs[0], s.xs[len(s.xs)-1]
}

// Percentile returns the pctile-th value using interpolation method R8
// from Hyndman and Fan (1996). pctile is clamped to [0, 1]. Percentile(0.5)
// is the median.
func (s *Samples) Percentile(pctile float64) float64 {
	if len(s.xs) == 0 {
		return 0
	}
	if pctile <= 0 {
		min, _ := s.Bounds()
		return min
	}
	if pctile >= 1 {
		_, max := s.Bounds()
		return max
	}

	s.sort()
	n := float64(len(s.xs))
	pos := 1.0/3.0 + pctile*(n+1.0/3.0)
	kf, frac := int(pos), pos-float64(int(pos))
	if kf <= 0 {
		return s.xs[0]
	}
	if kf >= len(s.xs) {
		return s.xs[len(s.xs)-1]
	}
	return s.xs[kf-1] + frac*(s.xs[kf]-s.xs[kf-1])
}
