package transform

import (
	"fmt"
	"math"

	"github.com/notargets/ShenKernel/utils"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// DCTProvider is a real-only cosine transform engine built on gonum's
// dsp/fourier package. All transforms are unnormalized and follow the
// REDFT conventions:
//
//	DCT1: Y_k = X_0 + (-1)^k X_{n-1} + 2 sum_{j=1}^{n-2} X_j cos(pi jk/(n-1))
//	DCT2: Y_k = 2 sum_{j=0}^{n-1} X_j cos(pi(2j+1)k/(2n))
//	DCT3: Y_j = X_0 + 2 sum_{k=1}^{n-1} X_k cos(pi(2j+1)k/(2n))
type DCTProvider struct {
	Fwd, Bck DCTType
}

func NewDCTProvider(fwd, bck DCTType) *DCTProvider {
	return &DCTProvider{Fwd: fwd, Bck: bck}
}

func (p *DCTProvider) BuildForward(in *utils.Array, axis int, opts Options) (Executor, error) {
	return buildDCT(p.Fwd, in, axis, opts)
}

func (p *DCTProvider) BuildBackward(in *utils.Array, axis int, opts Options) (Executor, error) {
	return buildDCT(p.Bck, in, axis, opts)
}

type dctExecutor struct {
	kind    DCTType
	axis    int
	opts    Options
	in, out *utils.Array
	workers []*dctWorker
}

func buildDCT(kind DCTType, in *utils.Array, axis int, opts Options) (*dctExecutor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if kind < DCT1 || kind > DCT3 {
		return nil, fmt.Errorf("%w: unknown DCT type %d", ErrConfiguration, kind)
	}
	if axis < 0 || axis >= in.NDim() {
		return nil, fmt.Errorf("%w: axis %d for shape %v", ErrConfiguration, axis, in.Shape())
	}
	if in.IsComplex() {
		return nil, fmt.Errorf("DCT on complex input: %w", ErrDataType)
	}
	n := in.Dim(axis)
	if n < 2 {
		return nil, fmt.Errorf("%w: DCT length %d", ErrConfiguration, n)
	}
	nw := min(opts.Threads, in.LineCount(axis))
	e := &dctExecutor{
		kind:    kind,
		axis:    axis,
		opts:    opts,
		in:      in,
		out:     utils.NewArray(in.Shape(), false),
		workers: make([]*dctWorker, nw),
	}
	for i := range e.workers {
		e.workers[i] = newDCTWorker(kind, n)
	}
	return e, nil
}

func (e *dctExecutor) Input() *utils.Array  { return e.in }
func (e *dctExecutor) Output() *utils.Array { return e.out }

func (e *dctExecutor) UpdateArrays(in, out *utils.Array) error {
	shape := e.in.Shape()
	if !in.HasShape(shape) || !out.HasShape(shape) {
		return fmt.Errorf("rebind %v -> %v to planned %v: %w", in.Shape(), out.Shape(), shape, ErrShapeMismatch)
	}
	if in.IsComplex() || out.IsComplex() {
		return fmt.Errorf("rebind DCT to complex buffers: %w", ErrDataType)
	}
	e.in, e.out = in, out
	return nil
}

func (e *dctExecutor) Execute() error {
	lines := e.in.LineCount(e.axis)
	if len(e.workers) == 1 {
		e.run(e.workers[0], 0, lines)
		return nil
	}
	var g errgroup.Group
	chunk := (lines + len(e.workers) - 1) / len(e.workers)
	for i, w := range e.workers {
		lo, hi := i*chunk, min((i+1)*chunk, lines)
		if lo >= hi {
			break
		}
		w := w
		g.Go(func() error {
			e.run(w, lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func (e *dctExecutor) run(w *dctWorker, lo, hi int) {
	for l := lo; l < hi; l++ {
		e.in.ReadLine(0, e.axis, l, w.src)
		w.transform(w.dst, w.src)
		e.out.WriteLine(0, e.axis, l, w.dst)
	}
}

// dctWorker owns the gonum plan and scratch space for one goroutine
type dctWorker struct {
	kind     DCTType
	n        int
	dct      *fourier.DCT
	fft      *fourier.CmplxFFT
	src, dst []float64
	seq, cf  []complex128
	cos, sin []float64 // twiddles exp(-i pi k/(2n))
}

func newDCTWorker(kind DCTType, n int) *dctWorker {
	w := &dctWorker{
		kind: kind,
		n:    n,
		src:  make([]float64, n),
		dst:  make([]float64, n),
	}
	if kind == DCT1 {
		w.dct = fourier.NewDCT(n)
		return w
	}
	w.fft = fourier.NewCmplxFFT(n)
	w.seq = make([]complex128, n)
	w.cf = make([]complex128, n)
	w.cos = make([]float64, n)
	w.sin = make([]float64, n)
	for k := 0; k < n; k++ {
		w.sin[k], w.cos[k] = math.Sincos(math.Pi * float64(k) / float64(2*n))
	}
	return w
}

func (w *dctWorker) transform(dst, src []float64) {
	switch w.kind {
	case DCT1:
		w.dct.Transform(dst, src)
	case DCT2:
		w.redft10(dst, src)
	case DCT3:
		w.redft01(dst, src)
	}
}

// redft10 uses Makhoul's reordering: even samples forward, odd samples
// reversed, one complex FFT of length n and a quarter-wave twiddle
func (w *dctWorker) redft10(dst, src []float64) {
	n := w.n
	for j := 0; j < n; j++ {
		if j%2 == 0 {
			w.seq[j/2] = complex(src[j], 0)
		} else {
			w.seq[n-1-j/2] = complex(src[j], 0)
		}
	}
	w.fft.Coefficients(w.cf, w.seq)
	for k := 0; k < n; k++ {
		dst[k] = 2 * (w.cos[k]*real(w.cf[k]) + w.sin[k]*imag(w.cf[k]))
	}
}

// redft01 inverts the Makhoul construction; the unnormalized inverse FFT
// supplies the factor n that separates REDFT01 from the inverse of REDFT10/2
func (w *dctWorker) redft01(dst, src []float64) {
	n := w.n
	for k := 0; k < n; k++ {
		a := src[k]
		var b float64
		if k > 0 {
			b = src[n-k]
		}
		w.cf[k] = complex(a*w.cos[k]+b*w.sin[k], a*w.sin[k]-b*w.cos[k])
	}
	w.fft.Sequence(w.seq, w.cf)
	for j := 0; j < n; j++ {
		if j%2 == 0 {
			dst[j] = real(w.seq[j/2])
		} else {
			dst[j] = real(w.seq[n-1-j/2])
		}
	}
}
