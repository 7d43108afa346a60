package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// dirichletVariant: phi_k = T_k - T_{k+2} for k < N-2. The last two
// functions, (T_0+T_1)/2 and (T_0-T_1)/2, equal 1 at x=1 and x=-1
// respectively and carry the boundary values.
type dirichletVariant struct{}

func (*dirichletVariant) minModes() int     { return 4 }
func (*dirichletVariant) boundaryRows() int { return 2 }

func (*dirichletVariant) recombineForward(o []float64) {
	n := len(o)
	c0 := 0.5 * (o[0] + o[1])
	c1 := 0.5 * (o[0] - o[1])
	for k := 0; k < n-2; k++ {
		o[k] -= o[k+2]
	}
	o[n-2] = c0
	o[n-1] = c1
}

func (*dirichletVariant) fixSlots(line []float64, imag bool) {}

func (*dirichletVariant) recombineBackward(fk, w []float64) {
	clear(w)
	for k := 0; k < len(fk)-2; k++ {
		w[k] += fk[k]
		w[k+2] -= fk[k]
	}
}

func (d *dirichletVariant) toChebyshev(fk, w []float64) {
	d.recombineBackward(fk, w)
	n := len(fk)
	w[0] += 0.5 * (fk[n-2] + fk[n-1])
	w[1] += 0.5 * (fk[n-2] - fk[n-1])
}

func (*dirichletVariant) vandermondeBasis(V *mat.Dense) *mat.Dense {
	r, N := V.Dims()
	P := mat.NewDense(r, N, nil)
	for i := 0; i < r; i++ {
		v, p := V.RawRowView(i), P.RawRowView(i)
		for k := 0; k < N-2; k++ {
			p[k] = v[k] - v[k+2]
		}
		p[N-2] = (v[0] + v[1]) / 2
		p[N-1] = (v[0] - v[1]) / 2
	}
	return P
}

// neumannVariant: phi_k = T_k - (k/(k+2))^2 T_{k+2}, zero slope at x=+-1.
// Mode 0 is T_0 and carries the mean value.
type neumannVariant struct {
	mean   float64
	factor CachedFactors
}

func newNeumannVariant(mean float64) *neumannVariant {
	return &neumannVariant{
		mean: mean,
		factor: newCachedFactors(2, func(k float64) float64 {
			return (k / (k + 2)) * (k / (k + 2))
		}),
	}
}

func (*neumannVariant) minModes() int     { return 4 }
func (*neumannVariant) boundaryRows() int { return 2 }

func (nv *neumannVariant) recombineForward(o []float64) {
	f := nv.factor.For(len(o))
	for k := range f {
		o[k] -= f[k] * o[k+2]
	}
}

func (nv *neumannVariant) fixSlots(o []float64, imag bool) {
	n := len(o)
	o[0] = nv.mean * math.Pi
	if imag {
		o[0] = 0
	}
	o[n-2] = 0
	o[n-1] = 0
}

func (nv *neumannVariant) recombineBackward(fk, w []float64) {
	f := nv.factor.For(len(fk))
	clear(w)
	for k := range f {
		w[k] += fk[k]
		w[k+2] -= f[k] * fk[k]
	}
}

func (nv *neumannVariant) toChebyshev(fk, w []float64) { nv.recombineBackward(fk, w) }

func (nv *neumannVariant) vandermondeBasis(V *mat.Dense) *mat.Dense {
	r, N := V.Dims()
	f := nv.factor.For(N)
	P := mat.NewDense(r, N, nil)
	for i := 0; i < r; i++ {
		v, p := V.RawRowView(i), P.RawRowView(i)
		for k := range f {
			p[k] = v[k] - f[k]*v[k+2]
		}
	}
	return P
}

// biharmonicVariant:
// phi_k = T_k - 2(k+2)/(k+3) T_{k+2} + (k+1)/(k+3) T_{k+4},
// zero value and zero slope at x=+-1. Homogeneous conditions only.
type biharmonicVariant struct {
	factor1, factor2 CachedFactors
}

func newBiharmonicVariant() *biharmonicVariant {
	return &biharmonicVariant{
		factor1: newCachedFactors(4, func(k float64) float64 { return -2 * (k + 2) / (k + 3) }),
		factor2: newCachedFactors(4, func(k float64) float64 { return (k + 1) / (k + 3) }),
	}
}

func (*biharmonicVariant) minModes() int     { return 6 }
func (*biharmonicVariant) boundaryRows() int { return 4 }

func (bv *biharmonicVariant) recombineForward(o []float64) {
	f1, f2 := bv.factor1.For(len(o)), bv.factor2.For(len(o))
	// ascending k only reads entries that are not yet overwritten
	for k := range f1 {
		o[k] += f1[k]*o[k+2] + f2[k]*o[k+4]
	}
}

func (*biharmonicVariant) fixSlots(o []float64, imag bool) {
	clear(o[len(o)-4:])
}

func (bv *biharmonicVariant) recombineBackward(fk, w []float64) {
	f1, f2 := bv.factor1.For(len(fk)), bv.factor2.For(len(fk))
	clear(w)
	for k := range f1 {
		w[k] += fk[k]
		w[k+2] += f1[k] * fk[k]
		w[k+4] += f2[k] * fk[k]
	}
}

func (bv *biharmonicVariant) toChebyshev(fk, w []float64) { bv.recombineBackward(fk, w) }

func (bv *biharmonicVariant) vandermondeBasis(V *mat.Dense) *mat.Dense {
	r, N := V.Dims()
	f1, f2 := bv.factor1.For(N), bv.factor2.For(N)
	P := mat.NewDense(r, N, nil)
	for i := 0; i < r; i++ {
		v, p := V.RawRowView(i), P.RawRowView(i)
		for k := range f1 {
			p[k] = v[k] + f1[k]*v[k+2] + f2[k]*v[k+4]
		}
	}
	return P
}
