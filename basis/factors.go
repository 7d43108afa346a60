package basis

// CachedFactors holds wavenumber dependent recombination weights for one
// axis length. The weights are derived state: For recomputes them whenever
// it is asked for a different axis length.
type CachedFactors struct {
	AxisLength int
	Weights    []float64
	rows       int
	weight     func(k float64) float64
}

func newCachedFactors(rows int, weight func(k float64) float64) CachedFactors {
	return CachedFactors{rows: rows, weight: weight}
}

// For returns the N - rows weights for an axis of length N
func (cf *CachedFactors) For(N int) []float64 {
	if cf.Weights != nil && cf.AxisLength == N {
		return cf.Weights
	}
	cf.AxisLength = N
	cf.Weights = make([]float64, N-cf.rows)
	for k := range cf.Weights {
		cf.Weights[k] = cf.weight(float64(k))
	}
	return cf.Weights
}
