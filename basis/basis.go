package basis

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/notargets/ShenKernel/basis/library/gocheb"
	"github.com/notargets/ShenKernel/transform"
	"github.com/notargets/ShenKernel/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrConfiguration = transform.ErrConfiguration
	ErrShapeMismatch = transform.ErrShapeMismatch
	ErrUnplannedUse  = transform.ErrUnplannedUse
)

// Kind selects the boundary-condition variant of a Chebyshev basis
type Kind uint8

const (
	Plain Kind = iota
	Dirichlet
	Neumann
	Biharmonic
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "Chebyshev"
	case Dirichlet:
		return "ShenDirichlet"
	case Neumann:
		return "ShenNeumann"
	case Biharmonic:
		return "ShenBiharmonic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Quadrature selects the grid and weights of a basis
type Quadrature string

const (
	Gauss        Quadrature = "GC" // Chebyshev-Gauss
	GaussLobatto Quadrature = "GL" // Chebyshev-Gauss-Lobatto
)

// Config holds the construction parameters of a basis. Zero values select
// Gauss quadrature and the domain [-1, 1].
type Config struct {
	N      int        `validate:"min=2"`
	Quad   Quadrature `validate:"oneof=GC GL"`
	Domain [2]float64
	BC     [2]float64 // Dirichlet values at x = Domain[1] and x = Domain[0]
	Scaled bool       // Dirichlet
	Mean   float64    // Neumann mean value
	// Plan allocates 1D transform buffers of length N at construction. Leave
	// it false when an owning product space plans the basis later.
	Plan     bool
	Provider transform.Provider `validate:"-"`
	Options  *transform.Options `validate:"-"`
	Logger   *zap.Logger        `validate:"-"`
}

var validate = validator.New()

// Basis is a Chebyshev basis on one axis. Shen kinds wrap a Plain basis (CT)
// and share its transform buffers. A Basis is Configured until Plan
// succeeds, and every transform call before that fails with ErrUnplannedUse.
type Basis struct {
	kind     Kind
	n        int
	quad     Quadrature
	domain   [2]float64
	variant  variant
	CT       *Basis
	BC       BoundaryValueInjector
	provider transform.Provider
	options  *transform.Options
	logger   *zap.Logger

	plan *transform.Plan
	work *utils.Array
	mass *massMatrix
	vand *mat.Dense // basis Vandermonde on the quadrature points
	wq   []float64
}

// New constructs a basis of the given kind
func New(kind Kind, cfg Config) (b *Basis, err error) {
	if cfg.Quad == "" {
		cfg.Quad = Gauss
	}
	if cfg.Domain == [2]float64{} {
		cfg.Domain = [2]float64{-1, 1}
	}
	if err = validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s basis: %v", ErrConfiguration, kind, err)
	}
	if !(cfg.Domain[1] > cfg.Domain[0]) {
		return nil, fmt.Errorf("%w: domain %v", ErrConfiguration, cfg.Domain)
	}

	b = &Basis{
		kind:     kind,
		n:        cfg.N,
		quad:     cfg.Quad,
		domain:   cfg.Domain,
		provider: cfg.Provider,
		options:  cfg.Options,
		logger:   utils.LoggerOrNop(cfg.Logger),
	}
	switch kind {
	case Plain:
		b.variant = plainVariant{}
		if b.provider == nil {
			b.provider = defaultProvider(cfg.Quad)
		}
	case Dirichlet:
		b.variant = &dirichletVariant{}
		b.BC = NewBoundaryValues(cfg.BC)
		if cfg.Scaled {
			b.logger.Warn("scaled Chebyshev Dirichlet basis is not defined, using the unscaled basis")
		}
	case Neumann:
		b.variant = newNeumannVariant(cfg.Mean)
	case Biharmonic:
		b.variant = newBiharmonicVariant()
	default:
		return nil, fmt.Errorf("%w: unknown basis kind %d", ErrConfiguration, kind)
	}
	if cfg.N < b.variant.minModes() {
		return nil, fmt.Errorf("%w: %s basis needs N >= %d, got %d",
			ErrConfiguration, kind, b.variant.minModes(), cfg.N)
	}
	if kind != Plain {
		ctCfg := cfg
		ctCfg.Plan = false
		if b.CT, err = New(Plain, ctCfg); err != nil {
			return nil, err
		}
	}
	if cfg.Plan {
		if err = b.Plan([]int{cfg.N}, 0, transform.Float64, cfg.Options); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func NewChebyshev(cfg Config) (*Basis, error)  { return New(Plain, cfg) }
func NewDirichlet(cfg Config) (*Basis, error)  { return New(Dirichlet, cfg) }
func NewNeumann(cfg Config) (*Basis, error)    { return New(Neumann, cfg) }
func NewBiharmonic(cfg Config) (*Basis, error) { return New(Biharmonic, cfg) }

func defaultProvider(q Quadrature) transform.Provider {
	if q == GaussLobatto {
		return transform.NewDCTProvider(transform.DCT1, transform.DCT1)
	}
	return transform.NewDCTProvider(transform.DCT2, transform.DCT3)
}

// Plan allocates the transform buffers for arrays of the given shape,
// transformed along axis. Planning again with the same shape, axis and data
// type keeps the existing buffers and executors; anything else replaces them.
// A nil opts falls back to the options given at construction.
func (b *Basis) Plan(shape []int, axis int, dt transform.DataType, opts *transform.Options) error {
	if axis < 0 {
		axis += len(shape)
	}
	if b.plan.Matches(shape, axis, dt) {
		return nil
	}
	if axis < 0 || axis >= len(shape) {
		return fmt.Errorf("%w: axis %d for shape %v", ErrConfiguration, axis, shape)
	}
	if shape[axis] != b.n {
		return fmt.Errorf("%s basis with N=%d planned for axis length %d: %w",
			b.kind, b.n, shape[axis], ErrShapeMismatch)
	}
	if opts == nil {
		opts = b.options
	}
	replanned := b.plan != nil
	if b.CT != nil {
		if err := b.CT.Plan(shape, axis, dt, opts); err != nil {
			return err
		}
		b.plan = b.CT.plan
	} else {
		p, err := transform.NewPlan(b.provider, shape, axis, dt, opts, b.logger)
		if err != nil {
			return fmt.Errorf("%s basis: %w", b.kind, err)
		}
		b.plan = p
	}
	b.work = utils.NewArray(shape, dt.IsComplex())
	b.logger.Debug("planned basis",
		zap.Stringer("kind", b.kind),
		zap.Int("N", b.n),
		zap.String("quad", string(b.quad)),
		zap.Ints("shape", shape),
		zap.Int("axis", axis),
		zap.Bool("replanned", replanned))
	return nil
}

func (b *Basis) checkPlanned() error {
	if b.plan == nil {
		return fmt.Errorf("%s basis: %w", b.kind, ErrUnplannedUse)
	}
	return nil
}

func (b *Basis) Kind() Kind         { return b.kind }
func (b *Basis) N() int             { return b.n }
func (b *Basis) Quad() Quadrature   { return b.quad }
func (b *Basis) Domain() [2]float64 { return b.domain }
func (b *Basis) IsPlanned() bool    { return b.plan != nil }
func (b *Basis) BoundaryRows() int  { return b.variant.boundaryRows() }
func (b *Basis) MinModes() int      { return b.variant.minModes() }

// TransformPlan is the shared plan, nil before planning
func (b *Basis) TransformPlan() *transform.Plan { return b.plan }

// IsScaled is false for every Chebyshev basis
func (b *Basis) IsScaled() bool { return false }

// Axis is the planned transform axis, 0 before planning
func (b *Basis) Axis() int {
	if b.plan == nil {
		return 0
	}
	return b.plan.Axis
}

// Input is the planned grid-space buffer, nil before planning
func (b *Basis) Input() *utils.Array {
	if b.plan == nil {
		return nil
	}
	return b.plan.Input()
}

// Output is the planned spectral-space buffer, nil before planning
func (b *Basis) Output() *utils.Array {
	if b.plan == nil {
		return nil
	}
	return b.plan.Output()
}

// Slice returns the index range of the modes that are not fixed by the
// boundary conditions
func (b *Basis) Slice() (lo, hi int) { return 0, b.n - b.variant.boundaryRows() }

// Wavenumbers returns 0..N-1
func (b *Basis) Wavenumbers() []int {
	k := make([]int, b.n)
	for i := range k {
		k[i] = i
	}
	return k
}

// DomainFactor is d(reference)/d(physical) = 2/(b-a)
func (b *Basis) DomainFactor() float64 {
	L := b.domain[1] - b.domain[0]
	if math.Abs(L-2) < 1.e-12 {
		return 1
	}
	return 2 / L
}

// PointsAndWeights returns the quadrature rule with N points, mapped onto
// the physical domain when scaled is true
func (b *Basis) PointsAndWeights(N int, scaled bool) (x, w []float64, err error) {
	switch b.quad {
	case GaussLobatto:
		x, w, err = gocheb.ChebGL(N)
	default:
		x, w, err = gocheb.ChebGQ(N)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if scaled {
		x = gocheb.MapToDomain(x, b.domain[0], b.domain[1])
	}
	return
}

// Mesh returns the physical grid points of the basis
func (b *Basis) Mesh() []float64 {
	x, _, _ := b.PointsAndWeights(b.n, true)
	return x
}

// Vandermonde returns the plain Chebyshev Vandermonde matrix at reference
// points x
func (b *Basis) Vandermonde(x []float64) *mat.Dense {
	return gocheb.Vandermonde1D(x, b.n)
}

// VandermondeBasis maps a Chebyshev Vandermonde matrix onto the basis
// functions of this kind
func (b *Basis) VandermondeBasis(V *mat.Dense) *mat.Dense {
	if _, c := V.Dims(); c != b.n {
		panic(fmt.Sprintf("Vandermonde with %d columns for N=%d", c, b.n))
	}
	return b.variant.vandermondeBasis(V)
}

// VandermondeBasisDerivative evaluates the k'th physical derivative of the
// basis functions, given the Chebyshev Vandermonde matrix V
func (b *Basis) VandermondeBasisDerivative(V *mat.Dense, k int) *mat.Dense {
	Vk := gocheb.GradVandermonde1D(V, k)
	if k > 0 {
		Vk.Scale(math.Pow(b.DomainFactor(), float64(k)), Vk)
	}
	return b.VandermondeBasis(Vk)
}
