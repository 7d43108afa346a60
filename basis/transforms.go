package basis

import (
	"fmt"

	"github.com/notargets/ShenKernel/basis/library/gocheb"
	"github.com/notargets/ShenKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// The transform methods below run on the planned buffer pair. An in argument
// is copied into the matching buffer first, and a nil out returns the buffer
// itself, which the next call in the same direction overwrites.

// ScalarProduct computes (f, phi_k) with the quadrature weights. With
// fastTransform false the product is taken directly through the basis
// Vandermonde matrix.
func (b *Basis) ScalarProduct(in, out *utils.Array, fastTransform bool) (*utils.Array, error) {
	if err := b.checkPlanned(); err != nil {
		return nil, err
	}
	if err := b.loadInput(in); err != nil {
		return nil, err
	}
	if err := b.scalarProduct(fastTransform); err != nil {
		return nil, err
	}
	return copyOut(b.plan.Output(), out)
}

// VandermondeScalarProduct is ScalarProduct on the slow path
func (b *Basis) VandermondeScalarProduct(in, out *utils.Array) (*utils.Array, error) {
	return b.ScalarProduct(in, out, false)
}

func (b *Basis) scalarProduct(fast bool) error {
	out := b.plan.Output()
	if fast {
		if err := b.fastScalarProduct(); err != nil {
			return err
		}
		if b.kind != Plain {
			out.ForEachLine(b.plan.Axis, b.variant.recombineForward)
		}
	} else {
		b.slowScalarProduct()
	}
	out.ForEachPartLine(b.plan.Axis, func(part int, line []float64) {
		b.variant.fixSlots(line, part == 1)
	})
	return nil
}

func (b *Basis) slowScalarProduct() {
	if b.vand == nil {
		x, w, _ := b.PointsAndWeights(b.n, false)
		b.vand = b.variant.vandermondeBasis(gocheb.Vandermonde1D(x, b.n))
		b.wq = w
	}
	wu := mat.NewVecDense(b.n, nil)
	utils.ZipLines(b.plan.Axis, func(lines [][]float64) {
		u, s := lines[0], lines[1]
		for j, w := range b.wq {
			wu.SetVec(j, w*u[j])
		}
		mat.NewVecDense(b.n, s).MulVec(b.vand.T(), wu)
	}, b.plan.Input(), b.plan.Output())
}

// Forward computes the expansion coefficients of the grid values in. For
// Dirichlet bases the boundary values are placed in the last two modes.
func (b *Basis) Forward(in, out *utils.Array, fastTransform bool) (*utils.Array, error) {
	if err := b.checkPlanned(); err != nil {
		return nil, err
	}
	if err := b.loadInput(in); err != nil {
		return nil, err
	}
	if err := b.forward(fastTransform); err != nil {
		return nil, err
	}
	return copyOut(b.plan.Output(), out)
}

func (b *Basis) forward(fast bool) error {
	if err := b.scalarProduct(fast); err != nil {
		return err
	}
	if b.BC != nil {
		b.BC.ApplyBefore(b.plan.Output(), b.plan.Axis, true, [2]float64{})
	}
	_, err := b.ApplyInverseMass(b.plan.Output())
	return err
}

// ApplyInverseMass solves M u = arr in place along the planned axis and
// returns arr. Boundary slots of Shen bases are left unchanged.
func (b *Basis) ApplyInverseMass(arr *utils.Array) (*utils.Array, error) {
	if err := b.checkPlanned(); err != nil {
		return nil, err
	}
	axis := b.plan.Axis
	if arr.NDim() <= axis || arr.Dim(axis) != b.n {
		return nil, fmt.Errorf("inverse mass of %s basis with N=%d on shape %v: %w",
			b.kind, b.n, arr.Shape(), ErrShapeMismatch)
	}
	if b.kind == Plain {
		arr.ForEachLine(axis, b.chebyshevInverseMass)
		return arr, nil
	}
	mm, err := b.massMatrix()
	if err != nil {
		return nil, err
	}
	arr.ForEachLine(axis, func(line []float64) {
		if err == nil {
			err = mm.solve(line)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s inverse mass: %w", b.kind, err)
	}
	return arr, nil
}

// Backward evaluates the expansion in on the quadrature grid. The spectral
// buffer is left holding the coefficients.
func (b *Basis) Backward(in, out *utils.Array) (*utils.Array, error) {
	if err := b.checkPlanned(); err != nil {
		return nil, err
	}
	if in != nil {
		if err := b.plan.Output().CopyFrom(in); err != nil {
			return nil, err
		}
	}
	if err := b.EvaluateExpansionAll(); err != nil {
		return nil, err
	}
	return copyOut(b.plan.Input(), out)
}

// EvaluateExpansionAll runs the backward transform from the planned spectral
// buffer into the planned grid buffer
func (b *Basis) EvaluateExpansionAll() error {
	if err := b.checkPlanned(); err != nil {
		return err
	}
	if b.kind == Plain {
		return b.chebyshevBackward()
	}
	fk := b.plan.Output()
	if err := b.work.CopyFrom(fk); err != nil {
		return err
	}
	utils.ZipLines(b.plan.Axis, func(lines [][]float64) {
		b.variant.recombineBackward(lines[0], lines[1])
	}, b.work, fk)
	if b.BC != nil {
		b.BC.ApplyBefore(fk, b.plan.Axis, false, [2]float64{0.5, 0.5})
	}
	err := b.chebyshevBackward()
	if cerr := fk.CopyFrom(b.work); err == nil {
		err = cerr
	}
	return err
}

// FastDerivative computes the k'th derivative of the grid values fj on the
// same grid: forward transform, derivative recurrence on the Chebyshev
// coefficients, backward transform
func (b *Basis) FastDerivative(fj, fd *utils.Array, k int) (*utils.Array, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: derivative order %d", ErrConfiguration, k)
	}
	if _, err := b.Forward(fj, nil, true); err != nil {
		return nil, err
	}
	fk := b.plan.Output()
	scale := b.DomainFactor()
	utils.ZipLines(b.plan.Axis, func(lines [][]float64) {
		c := lines[1]
		b.variant.toChebyshev(lines[0], c)
		copy(c, gocheb.ChebDer(c, k, scale))
	}, fk, b.work)
	if err := fk.CopyFrom(b.work); err != nil {
		return nil, err
	}
	if err := b.chebyshevBackward(); err != nil {
		return nil, err
	}
	return copyOut(b.plan.Input(), fd)
}

// Eval evaluates the expansion fk at the physical points x. It needs no plan.
func (b *Basis) Eval(x, fk []float64) ([]float64, error) {
	return b.EvalDerivative(x, fk, 0)
}

// EvalDerivative evaluates the k'th physical derivative of the expansion fk
// at the physical points x
func (b *Basis) EvalDerivative(x, fk []float64, k int) ([]float64, error) {
	if len(fk) != b.n {
		return nil, fmt.Errorf("%s basis with N=%d given %d coefficients: %w",
			b.kind, b.n, len(fk), ErrShapeMismatch)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: derivative order %d", ErrConfiguration, k)
	}
	c := make([]float64, b.n)
	b.variant.toChebyshev(fk, c)
	if k > 0 {
		c = gocheb.ChebDer(c, k, b.DomainFactor())
	}
	X := gocheb.MapToReference(x, b.domain[0], b.domain[1])
	return gocheb.ChebValSlice(X, c), nil
}

func (b *Basis) loadInput(in *utils.Array) error {
	if in == nil {
		return nil
	}
	return b.plan.Input().CopyFrom(in)
}

func copyOut(src, out *utils.Array) (*utils.Array, error) {
	if out == nil || out == src {
		return src, nil
	}
	if err := out.CopyFrom(src); err != nil {
		return nil, err
	}
	return out, nil
}
