package gocheb

// ORDERING NOTE: Grid points are returned in descending order,
// x_0 = cos(0) ... x_{N-1}, so that sample j lines up with input j of the
// discrete cosine transforms used by the fast path.

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrTooFewPoints is returned for quadrature requests with N < 2
var ErrTooFewPoints = errors.New("quadrature needs at least 2 points")

// ChebGQ returns the Chebyshev-Gauss points x_j = cos(pi(2j+1)/(2N)) and the
// uniform weights pi/N
func ChebGQ(N int) (X, W []float64, err error) {
	if N < 2 {
		return nil, nil, fmt.Errorf("Chebyshev-Gauss with N=%d: %w", N, ErrTooFewPoints)
	}
	X = make([]float64, N)
	W = make([]float64, N)
	for j := 0; j < N; j++ {
		X[j] = math.Cos(math.Pi * float64(2*j+1) / float64(2*N))
		W[j] = math.Pi / float64(N)
	}
	return
}

// ChebGL returns the Chebyshev-Gauss-Lobatto points x_j = cos(pi j/(N-1)),
// both endpoints included, with weights pi/(N-1) halved at the endpoints
func ChebGL(N int) (X, W []float64, err error) {
	if N < 2 {
		return nil, nil, fmt.Errorf("Chebyshev-Gauss-Lobatto with N=%d: %w", N, ErrTooFewPoints)
	}
	X = make([]float64, N)
	W = make([]float64, N)
	for j := 0; j < N; j++ {
		// Symmetric form keeps the midpoint exactly zero
		X[j] = math.Sin(math.Pi * float64(N-1-2*j) / float64(2*(N-1)))
		W[j] = math.Pi / float64(N-1)
	}
	W[0] /= 2
	W[N-1] /= 2
	return
}

// ChebGQEigen computes the Chebyshev-Gauss rule with the Golub-Welsch
// algorithm: the points are the eigenvalues of the symmetric Jacobi matrix of
// the three-term recurrence and the weights are pi times the squared first
// component of each eigenvector. Points are returned in descending order.
func ChebGQEigen(N int) (X, W []float64, err error) {
	if N < 2 {
		return nil, nil, fmt.Errorf("Golub-Welsch with N=%d: %w", N, ErrTooFewPoints)
	}
	// main diagonal is zero for the symmetric weight (1-x^2)^(-1/2)
	d0 := make([]float64, N)
	// 1st upper diagonal: 1/sqrt(2) couples T_0 and T_1, 1/2 elsewhere
	d1 := make([]float64, N-1)
	d1[0] = 1 / math.Sqrt2
	for i := 1; i < N-1; i++ {
		d1[i] = 0.5
	}
	JJ := NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		return nil, nil, errors.New("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	VVr := mat.NewDense(N, N, nil)
	eig.VectorsTo(VVr)

	// eigenvalues come back ascending
	X = make([]float64, N)
	W = make([]float64, N)
	for i := 0; i < N; i++ {
		src := N - 1 - i
		X[i] = x[src]
		v := VVr.At(0, src)
		W[i] = math.Pi * v * v
	}
	return
}

// NewSymTriDiagonal builds a symmetric matrix from its diagonal d0 and first
// off-diagonal d1
func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	n := len(d0)
	if len(d1) != n-1 {
		panic(fmt.Sprintf("off-diagonal length %d, want %d", len(d1), n-1))
	}
	Tri = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		Tri.SetSym(i, i, d0[i])
		if i < n-1 {
			Tri.SetSym(i, i+1, d1[i])
		}
	}
	return
}

// MapToDomain maps reference points on [-1,1] onto [a,b]
func MapToDomain(x []float64, a, b float64) []float64 {
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a + (b-a)/2*(1+xi)
	}
	return y
}

// MapToReference maps points on [a,b] back onto [-1,1]
func MapToReference(x []float64, a, b float64) []float64 {
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 2*(xi-a)/(b-a) - 1
	}
	return y
}
