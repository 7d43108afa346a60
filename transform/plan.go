package transform

import (
	"fmt"

	"github.com/notargets/ShenKernel/utils"
	"go.uber.org/zap"
)

// Plan owns the buffer pair and the forward/backward executors for one
// (shape, axis, data type). Forward maps Input to Output, Backward maps
// Output to Input, so both directions reuse the same storage: a result must be
// copied out before the next call in the same direction if it is to survive.
type Plan struct {
	Axis     int
	DataType DataType
	Options  Options
	Forward  Executor
	Backward Executor
	shape    []int
}

// NewPlan allocates the grid-space buffer, lets the provider build the
// forward executor (which allocates the spectral buffer), builds the backward
// executor on that spectral buffer, and binds both to the same pair.
// A nil opts selects DefaultOptions.
func NewPlan(provider Provider, shape []int, axis int, dt DataType, opts *Options,
	logger *zap.Logger) (p *Plan, err error) {
	logger = utils.LoggerOrNop(logger)
	if axis < 0 {
		axis += len(shape)
	}
	if err = checkShape(shape, axis); err != nil {
		return nil, err
	}
	if dt != Float64 && dt != Complex128 {
		return nil, fmt.Errorf("%w: unsupported data type %v", ErrConfiguration, dt)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}

	U := utils.NewArray(shape, false)
	fwd, err := provider.BuildForward(U, axis, o)
	if err != nil {
		return nil, fmt.Errorf("failed to plan forward transform: %w", err)
	}
	V := fwd.Output()
	U.Zero()
	V.Zero()
	bck, err := provider.BuildBackward(V, axis, o)
	if err != nil {
		return nil, fmt.Errorf("failed to plan backward transform: %w", err)
	}
	if err = fwd.UpdateArrays(U, V); err != nil {
		return nil, fmt.Errorf("failed to bind forward buffers: %w", err)
	}
	if err = bck.UpdateArrays(V, U); err != nil {
		return nil, fmt.Errorf("failed to bind backward buffers: %w", err)
	}

	p = &Plan{
		Axis:     axis,
		DataType: dt,
		Options:  o,
		Forward:  fwd,
		Backward: bck,
		shape:    append([]int(nil), shape...),
	}
	if dt.IsComplex() {
		Uc := utils.NewArray(shape, true)
		Vc := utils.NewArray(shape, true)
		if p.Forward, err = NewComplexAdapter(fwd, Uc, Vc); err != nil {
			return nil, err
		}
		if p.Backward, err = NewComplexAdapter(bck, Vc, Uc); err != nil {
			return nil, err
		}
	}
	logger.Debug("planned transform",
		zap.Ints("shape", shape),
		zap.Int("axis", axis),
		zap.Stringer("dtype", dt),
		zap.String("planner_effort", string(o.PlannerEffort)),
		zap.Int("threads", o.Threads))
	return p, nil
}

// Input is the grid-space buffer
func (p *Plan) Input() *utils.Array { return p.Forward.Input() }

// Output is the spectral-space buffer
func (p *Plan) Output() *utils.Array { return p.Forward.Output() }

func (p *Plan) Shape() []int { return append([]int(nil), p.shape...) }

// N is the length of the transformed axis
func (p *Plan) N() int { return p.shape[p.Axis] }

// Matches reports whether the plan already serves the given configuration
func (p *Plan) Matches(shape []int, axis int, dt DataType) bool {
	if p == nil {
		return false
	}
	if axis < 0 {
		axis += len(shape)
	}
	return p.Axis == axis && p.DataType == dt && p.Input().HasShape(shape)
}

func checkShape(shape []int, axis int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: empty shape", ErrConfiguration)
	}
	for _, s := range shape {
		if s < 1 {
			return fmt.Errorf("%w: shape %v", ErrConfiguration, shape)
		}
	}
	if axis < 0 || axis >= len(shape) {
		return fmt.Errorf("%w: axis %d for shape %v", ErrConfiguration, axis, shape)
	}
	return nil
}
