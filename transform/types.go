package transform

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/notargets/ShenKernel/utils"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfiguration reports an invalid rule, size, domain or option
	ErrConfiguration = errors.New("configuration error")
	// ErrShapeMismatch reports an array that disagrees with the planned buffers
	ErrShapeMismatch = utils.ErrShapeMismatch
	// ErrUnplannedUse reports a transform call before Plan
	ErrUnplannedUse = errors.New("transform used before plan")
	// ErrDataType reports complex data handed to a real-only engine or buffer
	ErrDataType = utils.ErrDataType
)

// DataType is the element type of the planned buffers
type DataType int

const (
	Float64 DataType = iota + 1
	Complex128
)

func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Complex128:
		return "complex128"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

func (dt DataType) IsComplex() bool { return dt == Complex128 }

// DCTType selects the discrete cosine transform computed by an executor
type DCTType int

const (
	DCT1 DCTType = iota + 1 // REDFT00, Gauss-Lobatto grids
	DCT2                    // REDFT10, Gauss grids forward
	DCT3                    // REDFT01, Gauss grids backward
)

// PlannerEffort mirrors the planning rigor levels of FFTW-style engines
type PlannerEffort string

const (
	Estimate   PlannerEffort = "ESTIMATE"
	Measure    PlannerEffort = "MEASURE"
	Patient    PlannerEffort = "PATIENT"
	Exhaustive PlannerEffort = "EXHAUSTIVE"
)

// Options are passed to the provider when executors are built
type Options struct {
	AvoidCopy      bool          `yaml:"avoid_copy"`
	OverwriteInput bool          `yaml:"overwrite_input"`
	AutoAlignInput bool          `yaml:"auto_align_input"`
	AutoContiguous bool          `yaml:"auto_contiguous"`
	PlannerEffort  PlannerEffort `yaml:"planner_effort" validate:"oneof=ESTIMATE MEASURE PATIENT EXHAUSTIVE"`
	Threads        int           `yaml:"threads" validate:"min=1"`
}

var validate = validator.New()

// DefaultOptions returns the options used when a caller passes none
func DefaultOptions() Options {
	return Options{
		AvoidCopy:      true,
		OverwriteInput: true,
		AutoAlignInput: true,
		AutoContiguous: true,
		PlannerEffort:  Measure,
		Threads:        1,
	}
}

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: transform options: %v", ErrConfiguration, err)
	}
	return nil
}

// LoadOptions decodes YAML options on top of DefaultOptions and validates
// the result. An empty document yields the defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("%w: decode transform options: %v", ErrConfiguration, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
