package gocheb

import "fmt"

// ChebVal evaluates the Chebyshev series sum_k c_k T_k(x) with Clenshaw's
// recurrence
func ChebVal(x float64, c []float64) float64 {
	switch len(c) {
	case 0:
		return 0
	case 1:
		return c[0]
	}
	var b1, b2 float64
	for k := len(c) - 1; k >= 1; k-- {
		b1, b2 = c[k]+2*x*b1-b2, b1
	}
	return c[0] + x*b1 - b2
}

// ChebValSlice evaluates the series at every point of x
func ChebValSlice(x []float64, c []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = ChebVal(xi, c)
	}
	return out
}

// DerivativeCoefficients computes the Chebyshev coefficients ck of f'(x)
// given the coefficients fk of f(x), using the backward recurrence
// c_k = c_{k+2} + 2(k+1) f_{k+1}. fk and ck must not overlap.
func DerivativeCoefficients(fk, ck []float64) []float64 {
	N := len(fk)
	if len(ck) != N {
		panic(fmt.Sprintf("derivative output length %d, want %d", len(ck), N))
	}
	ck[N-1] = 0
	if N == 1 {
		return ck
	}
	ck[N-2] = 2 * float64(N-1) * fk[N-1]
	for k := N - 3; k >= 0; k-- {
		ck[k] = ck[k+2] + 2*float64(k+1)*fk[k+1]
	}
	ck[0] /= 2
	return ck
}

// ChebDer returns the coefficients of the k'th derivative of the series c,
// each differentiation multiplied by scale (the domain factor 2/(b-a))
func ChebDer(c []float64, k int, scale float64) []float64 {
	out := append([]float64(nil), c...)
	work := make([]float64, len(c))
	for d := 0; d < k; d++ {
		DerivativeCoefficients(out, work)
		for i := range work {
			work[i] *= scale
		}
		out, work = work, out
	}
	return out
}
