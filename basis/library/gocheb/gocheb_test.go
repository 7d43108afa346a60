package gocheb

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestChebGQMatchesGolubWelsch(t *testing.T) {
	for N := 2; N <= 16; N++ {
		t.Run(fmt.Sprintf("N=%d", N), func(t *testing.T) {
			x, w, err := ChebGQ(N)
			require.NoError(t, err)
			xe, we, err := ChebGQEigen(N)
			require.NoError(t, err)
			assert.InDeltaSlicef(t, x, xe, 1.e-12, "points")
			assert.InDeltaSlicef(t, w, we, 1.e-12, "weights")
		})
	}
}

func TestQuadratureIntegratesChebyshevPolynomials(t *testing.T) {
	rules := map[string]func(int) ([]float64, []float64, error){
		"GC": ChebGQ,
		"GL": ChebGL,
	}
	for name, rule := range rules {
		for N := 2; N <= 12; N++ {
			t.Run(fmt.Sprintf("%s/N=%d", name, N), func(t *testing.T) {
				x, w, err := rule(N)
				require.NoError(t, err)
				assert.InDelta(t, math.Pi, floats.Sum(w), 1.e-13)
				// exact for degree 2N-1 (Gauss) and 2N-3 (Lobatto)
				maxDeg := 2*N - 1
				if name == "GL" {
					maxDeg = 2*N - 3
				}
				V := Vandermonde1D(x, maxDeg+1)
				for k := 0; k <= maxDeg; k++ {
					var sum float64
					for j := range x {
						sum += w[j] * V.At(j, k)
					}
					want := 0.
					if k == 0 {
						want = math.Pi
					}
					if math.Abs(sum-want) > 1.e-12 {
						t.Fatalf("integral of T_%d: got %g, want %g", k, sum, want)
					}
				}
			})
		}
	}
}

func TestChebGLEndpoints(t *testing.T) {
	x, w, err := ChebGL(5)
	require.NoError(t, err)
	assert.Equal(t, 1., x[0])
	assert.Equal(t, -1., x[4])
	assert.Equal(t, 0., x[2])
	assert.InDelta(t, math.Pi/8, w[0], 1.e-15)
	assert.InDelta(t, math.Pi/4, w[1], 1.e-15)
}

func TestQuadratureRejectsSmallN(t *testing.T) {
	for _, N := range []int{-1, 0, 1} {
		_, _, err := ChebGQ(N)
		assert.ErrorIs(t, err, ErrTooFewPoints)
		_, _, err = ChebGL(N)
		assert.ErrorIs(t, err, ErrTooFewPoints)
		_, _, err = ChebGQEigen(N)
		assert.ErrorIs(t, err, ErrTooFewPoints)
	}
}

func TestVandermondeAndClenshaw(t *testing.T) {
	x := []float64{-1, -0.7, -0.1, 0, 0.3, 0.95, 1}
	N := 9
	V := Vandermonde1D(x, N)
	for i, xi := range x {
		for k := 0; k < N; k++ {
			want := math.Cos(float64(k) * math.Acos(xi))
			assert.InDelta(t, want, V.At(i, k), 1.e-13)

			c := make([]float64, k+1)
			c[k] = 1
			assert.InDelta(t, want, ChebVal(xi, c), 1.e-13)
		}
	}
	assert.Equal(t, 0., ChebVal(0.5, nil))
	assert.Equal(t, 3., ChebVal(0.5, []float64{3}))
}

func TestGradVandermonde1D(t *testing.T) {
	x, _, err := ChebGQ(7)
	require.NoError(t, err)
	N := 7
	V := Vandermonde1D(x, N)

	V0 := GradVandermonde1D(V, 0)
	assert.InDeltaSlicef(t, V.RawMatrix().Data, V0.RawMatrix().Data, 0, "")

	// T_j'(cos t) = j sin(j t)/sin(t)
	V1 := GradVandermonde1D(V, 1)
	for i, xi := range x {
		th := math.Acos(xi)
		for j := 0; j < N; j++ {
			want := float64(j) * math.Sin(float64(j)*th) / math.Sin(th)
			if math.Abs(V1.At(i, j)-want) > 1.e-11 {
				t.Fatalf("dT_%d/dx at %g: got %g, want %g", j, xi, V1.At(i, j), want)
			}
		}
	}

	// T_3'' = 24x, T_4'' = 96x^2 - 16
	V2 := GradVandermonde1D(V, 2)
	for i, xi := range x {
		assert.InDelta(t, 24*xi, V2.At(i, 3), 1.e-11)
		assert.InDelta(t, 96*xi*xi-16, V2.At(i, 4), 1.e-11)
	}
}

func TestDerivativeCoefficientsOfMonomials(t *testing.T) {
	// x^3 = (3T_1 + T_3)/4, d/dx = 3x^2 = 3(T_0 + T_2)/2
	fk := []float64{0, 0.75, 0, 0.25, 0}
	ck := make([]float64, len(fk))
	DerivativeCoefficients(fk, ck)
	assert.InDeltaSlicef(t, []float64{1.5, 0, 1.5, 0, 0}, ck, 1.e-14, "")

	// second derivative on [0, 4] scales by (2/4)^2
	d2 := ChebDer(fk, 2, 0.5)
	assert.InDeltaSlicef(t, []float64{0, 6 * 0.25, 0, 0, 0}, d2, 1.e-14, "")
}

func TestDomainMapping(t *testing.T) {
	x, _, err := ChebGL(6)
	require.NoError(t, err)
	y := MapToDomain(x, 2, 5)
	assert.InDelta(t, 5., y[0], 1.e-15)
	assert.InDelta(t, 2., y[5], 1.e-15)
	assert.InDeltaSlicef(t, x, MapToReference(y, 2, 5), 1.e-14, "")
}
