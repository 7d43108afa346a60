package basis

import "github.com/notargets/ShenKernel/utils"

// BoundaryValueInjector places inhomogeneous boundary values into coefficient
// arrays. In forward mode the values are written into the two boundary slots
// N-2 and N-1 along axis. In backward mode the lifting is added onto the
// Chebyshev coefficients T_0 and T_1, weighted by weights[0] and weights[1].
// Only the real part carries boundary values.
type BoundaryValueInjector interface {
	ApplyBefore(coeffs *utils.Array, axis int, forward bool, weights [2]float64)
}

// BoundaryValues holds the Dirichlet values at the right and left end of the
// domain
type BoundaryValues struct {
	BC [2]float64
}

func NewBoundaryValues(bc [2]float64) *BoundaryValues {
	return &BoundaryValues{BC: bc}
}

// Homogeneous reports whether both boundary values are zero
func (bv *BoundaryValues) Homogeneous() bool {
	return bv.BC == [2]float64{}
}

func (bv *BoundaryValues) ApplyBefore(coeffs *utils.Array, axis int, forward bool,
	weights [2]float64) {
	bc0, bc1 := bv.BC[0], bv.BC[1]
	coeffs.ForEachPartLine(axis, func(part int, line []float64) {
		n := len(line)
		if forward {
			if part == 0 {
				line[n-2], line[n-1] = bc0, bc1
			} else {
				line[n-2], line[n-1] = 0, 0
			}
			return
		}
		if part != 0 {
			return
		}
		line[0] += weights[0] * (bc0 + bc1)
		line[1] += weights[1] * (bc0 - bc1)
	})
}
