package basis

import (
	"math"

	"github.com/notargets/ShenKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// variant is the per-kind algebra of a basis. All line arguments are
// one-dimensional lines of length N along the transform axis.
type variant interface {
	minModes() int
	boundaryRows() int
	// recombineForward turns Chebyshev scalar products (f, T_k) into scalar
	// products with the basis functions, in place
	recombineForward(line []float64)
	// fixSlots sets the modes fixed by the boundary conditions after a scalar
	// product; imag is true for the imaginary part of complex data
	fixSlots(line []float64, imag bool)
	// recombineBackward writes the Chebyshev coefficients of the expansion
	// fk into w, leaving out any boundary lifting
	recombineBackward(fk, w []float64)
	// toChebyshev is recombineBackward plus the lifting carried in fk itself
	toChebyshev(fk, w []float64)
	vandermondeBasis(V *mat.Dense) *mat.Dense
}

// plainVariant is the regular Chebyshev series, phi_k = T_k
type plainVariant struct{}

func (plainVariant) minModes() int                      { return 2 }
func (plainVariant) boundaryRows() int                  { return 0 }
func (plainVariant) recombineForward(line []float64)    {}
func (plainVariant) fixSlots(line []float64, imag bool) {}
func (plainVariant) recombineBackward(fk, w []float64)  { copy(w, fk) }
func (plainVariant) toChebyshev(fk, w []float64)        { copy(w, fk) }

func (plainVariant) vandermondeBasis(V *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(V)
}

// fastScalarProduct runs the forward DCT on the planned buffers and applies
// the quadrature weight, pi/(2N) for Gauss and pi/(2(N-1)) for Gauss-Lobatto
func (b *Basis) fastScalarProduct() error {
	if err := b.plan.Forward.Execute(); err != nil {
		return err
	}
	scale := math.Pi / float64(2*b.n)
	if b.quad == GaussLobatto {
		scale = math.Pi / float64(2*(b.n-1))
	}
	b.plan.Output().Scale(scale)
	return nil
}

// chebyshevBackward runs the backward DCT from the spectral buffer into the
// grid buffer and adds the boundary samples the REDFT kernels count twice:
// the k=0 mode for Gauss, and k=0 plus the alternating k=N-1 mode for
// Gauss-Lobatto
func (b *Basis) chebyshevBackward() error {
	if err := b.plan.Backward.Execute(); err != nil {
		return err
	}
	fk, u := b.plan.Output(), b.plan.Input()
	last := b.n - 1
	lobatto := b.quad == GaussLobatto
	utils.ZipLines(b.plan.Axis, func(lines [][]float64) {
		c, v := lines[0], lines[1]
		for j := range v {
			v[j] = 0.5*v[j] + 0.5*c[0]
			if lobatto {
				if j%2 == 0 {
					v[j] += 0.5 * c[last]
				} else {
					v[j] -= 0.5 * c[last]
				}
			}
		}
	}, fk, u)
	return nil
}

// chebyshevInverseMass inverts BTT_kj = c_k pi/2 delta_kj, c_0 = 2 and
// c_{N-1} = 2 on Gauss-Lobatto grids
func (b *Basis) chebyshevInverseMass(line []float64) {
	for k := range line {
		line[k] *= 2 / math.Pi
	}
	line[0] /= 2
	if b.quad == GaussLobatto {
		line[len(line)-1] /= 2
	}
}
