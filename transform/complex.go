package transform

import (
	"fmt"

	"github.com/notargets/ShenKernel/utils"
)

// ComplexAdapter runs a real-only executor twice, once over the real part and
// once over the imaginary part of a complex buffer pair. The real executor's
// own buffers are used as scratch.
type ComplexAdapter struct {
	inner   Executor
	in, out *utils.Array
}

func NewComplexAdapter(inner Executor, in, out *utils.Array) (*ComplexAdapter, error) {
	ca := &ComplexAdapter{inner: inner}
	if err := ca.UpdateArrays(in, out); err != nil {
		return nil, err
	}
	return ca, nil
}

func (ca *ComplexAdapter) Input() *utils.Array  { return ca.in }
func (ca *ComplexAdapter) Output() *utils.Array { return ca.out }

// Real returns the wrapped real executor
func (ca *ComplexAdapter) Real() Executor { return ca.inner }

func (ca *ComplexAdapter) UpdateArrays(in, out *utils.Array) error {
	shape := ca.inner.Input().Shape()
	if !in.HasShape(shape) || !out.HasShape(shape) {
		return fmt.Errorf("complex buffers %v -> %v for planned %v: %w",
			in.Shape(), out.Shape(), shape, ErrShapeMismatch)
	}
	if !in.IsComplex() || !out.IsComplex() {
		return fmt.Errorf("complex adapter needs complex buffers: %w", ErrDataType)
	}
	ca.in, ca.out = in, out
	return nil
}

func (ca *ComplexAdapter) Execute() error {
	rin, rout := ca.inner.Input(), ca.inner.Output()

	copy(rin.Re, ca.in.Re)
	if err := ca.inner.Execute(); err != nil {
		return fmt.Errorf("real pass: %w", err)
	}
	copy(ca.out.Re, rout.Re)

	copy(rin.Re, ca.in.Im)
	if err := ca.inner.Execute(); err != nil {
		return fmt.Errorf("imaginary pass: %w", err)
	}
	copy(ca.out.Im, rout.Re)
	return nil
}
