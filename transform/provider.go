package transform

import "github.com/notargets/ShenKernel/utils"

// Executor is a transform bound to an input and an output buffer. Execute
// reads Input and overwrites Output.
type Executor interface {
	Execute() error
	Input() *utils.Array
	Output() *utils.Array
	// UpdateArrays rebinds the executor to a new buffer pair with the
	// planned shape
	UpdateArrays(in, out *utils.Array) error
}

// Provider builds executors for one axis of an array. BuildForward and
// BuildBackward allocate a fresh output buffer for the given input.
type Provider interface {
	BuildForward(in *utils.Array, axis int, opts Options) (Executor, error)
	BuildBackward(in *utils.Array, axis int, opts Options) (Executor, error)
}
