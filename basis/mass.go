package basis

import (
	"fmt"

	"github.com/notargets/ShenKernel/basis/library/gocheb"
	"gonum.org/v1/gonum/mat"
)

// massMatrix is the discrete Shen mass matrix M = P^T W P, with P the basis
// Vandermonde matrix on the quadrature points and W the quadrature weights.
// Only the block of free modes is factored; the boundary slots enter the
// right-hand side through coupling.
type massMatrix struct {
	free     int
	chol     mat.Cholesky
	coupling *mat.Dense // free x boundaryRows, nil unless slots carry values
	rhs, sol *mat.VecDense
}

func (b *Basis) massMatrix() (*massMatrix, error) {
	if b.mass != nil {
		return b.mass, nil
	}
	x, w, err := b.PointsAndWeights(b.n, false)
	if err != nil {
		return nil, err
	}
	P := b.variant.vandermondeBasis(gocheb.Vandermonde1D(x, b.n))
	WP := mat.DenseCopyOf(P)
	for i, wi := range w {
		row := WP.RawRowView(i)
		for j := range row {
			row[j] *= wi
		}
	}
	var M mat.Dense
	M.Mul(P.T(), WP)

	free := b.n - b.variant.boundaryRows()
	Mii := mat.NewSymDense(free, nil)
	for i := 0; i < free; i++ {
		for j := i; j < free; j++ {
			Mii.SetSym(i, j, M.At(i, j))
		}
	}
	mm := &massMatrix{
		free: free,
		rhs:  mat.NewVecDense(free, nil),
		sol:  mat.NewVecDense(free, nil),
	}
	if ok := mm.chol.Factorize(Mii); !ok {
		return nil, fmt.Errorf("%w: %s mass matrix with N=%d is not positive definite",
			ErrConfiguration, b.kind, b.n)
	}
	if b.BC != nil {
		mm.coupling = mat.DenseCopyOf(M.Slice(0, free, free, b.n))
	}
	b.mass = mm
	return mm, nil
}

// solve replaces the free modes of line with M_ii^-1 (line_i - M_ib line_b)
func (mm *massMatrix) solve(line []float64) error {
	copy(mm.rhs.RawVector().Data, line[:mm.free])
	if mm.coupling != nil {
		g := mat.NewVecDense(len(line)-mm.free, append([]float64(nil), line[mm.free:]...))
		var lift mat.VecDense
		lift.MulVec(mm.coupling, g)
		mm.rhs.SubVec(mm.rhs, &lift)
	}
	if err := mm.chol.SolveVecTo(mm.sol, mm.rhs); err != nil {
		return err
	}
	copy(line[:mm.free], mm.sol.RawVector().Data)
	return nil
}
