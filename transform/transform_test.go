package transform

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/notargets/ShenKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1.e-11)

// directDCT evaluates the REDFT definitions term by term
func directDCT(kind DCTType, x []float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	for k := 0; k < n; k++ {
		switch kind {
		case DCT1:
			y[k] = x[0] + math.Pow(-1, float64(k))*x[n-1]
			for j := 1; j < n-1; j++ {
				y[k] += 2 * x[j] * math.Cos(math.Pi*float64(j*k)/float64(n-1))
			}
		case DCT2:
			for j := 0; j < n; j++ {
				y[k] += 2 * x[j] * math.Cos(math.Pi*float64((2*j+1)*k)/float64(2*n))
			}
		case DCT3:
			y[k] = x[0]
			for j := 1; j < n; j++ {
				y[k] += 2 * x[j] * math.Cos(math.Pi*float64((2*k+1)*j)/float64(2*n))
			}
		}
	}
	return y
}

func randomArray(rng *rand.Rand, shape []int, isComplex bool) *utils.Array {
	a := utils.NewArray(shape, isComplex)
	for _, p := range a.Parts() {
		for i := range p {
			p[i] = rng.Float64()*2 - 1
		}
	}
	return a
}

func TestDCTMatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, kind := range []DCTType{DCT1, DCT2, DCT3} {
		for n := 2; n <= 11; n++ {
			t.Run(fmt.Sprintf("DCT%d/n=%d", kind, n), func(t *testing.T) {
				in := randomArray(rng, []int{n}, false)
				e, err := buildDCT(kind, in, 0, DefaultOptions())
				require.NoError(t, err)
				require.NoError(t, e.Execute())
				want := directDCT(kind, in.Re)
				if diff := cmp.Diff(want, e.Output().Re, approx); diff != "" {
					t.Fatalf("DCT%d mismatch (-want +got):\n%s", kind, diff)
				}
			})
		}
	}
}

func TestDCTAlongAxisWithThreads(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	shape := []int{5, 6, 3}
	for axis := 0; axis < 3; axis++ {
		for _, threads := range []int{1, 2, 4} {
			t.Run(fmt.Sprintf("axis=%d/threads=%d", axis, threads), func(t *testing.T) {
				in := randomArray(rng, shape, false)
				opts := DefaultOptions()
				opts.Threads = threads
				e, err := buildDCT(DCT2, in, axis, opts)
				require.NoError(t, err)
				require.NoError(t, e.Execute())

				line := make([]float64, shape[axis])
				got := make([]float64, shape[axis])
				for l := 0; l < in.LineCount(axis); l++ {
					in.ReadLine(0, axis, l, line)
					e.Output().ReadLine(0, axis, l, got)
					assert.InDeltaSlicef(t, directDCT(DCT2, line), got, 1.e-11, "line %d", l)
				}
			})
		}
	}
}

func TestDCTInverses(t *testing.T) {
	// DCT3(DCT2(x)) = 2n x, DCT1(DCT1(x)) = 2(n-1) x
	rng := rand.New(rand.NewSource(3))
	n := 9
	x := randomArray(rng, []int{n}, false)
	e2, err := buildDCT(DCT2, x, 0, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, e2.Execute())
	e3, err := buildDCT(DCT3, e2.Output(), 0, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, e3.Execute())
	got := e3.Output().Clone()
	got.Scale(1 / float64(2*n))
	assert.InDeltaSlicef(t, x.Re, got.Re, 1.e-12, "")

	e1, err := buildDCT(DCT1, x, 0, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, e1.Execute())
	e1b, err := buildDCT(DCT1, e1.Output(), 0, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, e1b.Execute())
	got = e1b.Output().Clone()
	got.Scale(1 / float64(2*(n-1)))
	assert.InDeltaSlicef(t, x.Re, got.Re, 1.e-12, "")
}

func TestBuildDCTErrors(t *testing.T) {
	_, err := buildDCT(DCT1, utils.NewArray([]int{4}, true), 0, DefaultOptions())
	assert.ErrorIs(t, err, ErrDataType)

	_, err = buildDCT(DCT1, utils.NewArray([]int{1}, false), 0, DefaultOptions())
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = buildDCT(DCT2, utils.NewArray([]int{4}, false), 1, DefaultOptions())
	assert.ErrorIs(t, err, ErrConfiguration)

	bad := DefaultOptions()
	bad.Threads = 0
	_, err = buildDCT(DCT2, utils.NewArray([]int{4}, false), 0, bad)
	assert.ErrorIs(t, err, ErrConfiguration)

	e, err := buildDCT(DCT2, utils.NewArray([]int{4}, false), 0, DefaultOptions())
	require.NoError(t, err)
	err = e.UpdateArrays(utils.NewArray([]int{5}, false), utils.NewArray([]int{5}, false))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPlanSharesBuffers(t *testing.T) {
	p, err := NewPlan(NewDCTProvider(DCT2, DCT3), []int{4, 8}, -1, Float64, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Axis)
	assert.Equal(t, 8, p.N())
	assert.Same(t, p.Forward.Output(), p.Backward.Input())
	assert.Same(t, p.Forward.Input(), p.Backward.Output())
	assert.Same(t, p.Input(), p.Forward.Input())
	assert.True(t, p.Matches([]int{4, 8}, 1, Float64))
	assert.True(t, p.Matches([]int{4, 8}, -1, Float64))
	assert.False(t, p.Matches([]int{4, 8}, 0, Float64))
	assert.False(t, p.Matches([]int{4, 9}, 1, Float64))
	assert.False(t, p.Matches([]int{4, 8}, 1, Complex128))

	// Round trip through the shared pair
	rng := rand.New(rand.NewSource(4))
	x := randomArray(rng, []int{4, 8}, false)
	require.NoError(t, p.Input().CopyFrom(x))
	require.NoError(t, p.Forward.Execute())
	require.NoError(t, p.Backward.Execute())
	got := p.Input().Clone()
	got.Scale(1. / 16)
	assert.InDeltaSlicef(t, x.Re, got.Re, 1.e-12, "")
}

func TestPlanComplexAdapter(t *testing.T) {
	shape := []int{7}
	p, err := NewPlan(NewDCTProvider(DCT1, DCT1), shape, 0, Complex128, nil, nil)
	require.NoError(t, err)
	require.True(t, p.Input().IsComplex())
	require.True(t, p.Output().IsComplex())
	assert.Same(t, p.Forward.Output(), p.Backward.Input())

	rng := rand.New(rand.NewSource(5))
	x := randomArray(rng, shape, true)
	require.NoError(t, p.Input().CopyFrom(x))
	require.NoError(t, p.Forward.Execute())
	assert.InDeltaSlicef(t, directDCT(DCT1, x.Re), p.Output().Re, 1.e-11, "real part")
	assert.InDeltaSlicef(t, directDCT(DCT1, x.Im), p.Output().Im, 1.e-11, "imaginary part")
	// input buffer is left untouched by the two passes
	assert.Equal(t, x.Re, p.Input().Re)
	assert.Equal(t, x.Im, p.Input().Im)
}

func TestNewPlanErrors(t *testing.T) {
	prov := NewDCTProvider(DCT2, DCT3)
	_, err := NewPlan(prov, nil, 0, Float64, nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewPlan(prov, []int{8}, 2, Float64, nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewPlan(prov, []int{8}, 0, DataType(9), nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	opts := DefaultOptions()
	opts.PlannerEffort = "WHENEVER"
	_, err = NewPlan(prov, []int{8}, 0, Float64, &opts, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader("planner_effort: PATIENT\nthreads: 4\noverwrite_input: false\n"))
	require.NoError(t, err)
	want := DefaultOptions()
	want.PlannerEffort = Patient
	want.Threads = 4
	want.OverwriteInput = false
	assert.Equal(t, want, opts)

	opts, err = LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	_, err = LoadOptions(strings.NewReader("threads: -2\n"))
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = LoadOptions(strings.NewReader("threads: [\n"))
	assert.ErrorIs(t, err, ErrConfiguration)
}
