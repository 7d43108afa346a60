package gocheb

import (
	"gonum.org/v1/gonum/mat"
)

// Vandermonde1D initializes the 1D Chebyshev Vandermonde matrix
// V_{ij} = T_j(x_i) for j = 0..N-1
func Vandermonde1D(x []float64, N int) *mat.Dense {
	Np := len(x)
	V := mat.NewDense(Np, N, nil)
	for i, xi := range x {
		row := V.RawRowView(i)
		row[0] = 1
		if N > 1 {
			row[1] = xi
		}
		for j := 2; j < N; j++ {
			row[j] = 2*xi*row[j-1] - row[j-2]
		}
	}
	return V
}

// DerivativeMatrix1D returns the N x N matrix D whose column j holds the
// Chebyshev coefficients of the k'th derivative of T_j. k = 0 gives identity.
func DerivativeMatrix1D(N, k int) *mat.Dense {
	D := mat.NewDense(N, N, nil)
	col := make([]float64, N)
	work := make([]float64, N)
	for j := 0; j < N; j++ {
		clear(col)
		col[j] = 1
		for d := 0; d < k; d++ {
			DerivativeCoefficients(col, work)
			col, work = work, col
		}
		D.SetCol(j, col)
	}
	return D
}

// GradVandermonde1D builds the Vandermonde matrix of the k'th derivative,
// (V_k)_{ij} = d^k T_j/dx^k (x_i), from the plain Vandermonde matrix V
func GradVandermonde1D(V *mat.Dense, k int) *mat.Dense {
	if k == 0 {
		return mat.DenseCopyOf(V)
	}
	_, N := V.Dims()
	var Vk mat.Dense
	Vk.Mul(V, DerivativeMatrix1D(N, k))
	return &Vk
}
