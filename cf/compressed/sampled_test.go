package compressed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/auxvar"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

func tiePoints(t *testing.T, indices ...int) *auxvar.TiePointIndex {
	t.Helper()
	tp, err := auxvar.TiePointIndexOf(indices...)
	require.NoError(t, err)
	return tp
}

func paramOf(t *testing.T, vals []float64, shape []int, dims []int) *auxvar.InterpolationParameter {
	t.Helper()
	arr, err := ndarray.FromSlice(api.TypeFloat64, vals, shape...)
	require.NoError(t, err)
	p, err := auxvar.ParameterOf(arr, dims)
	require.NoError(t, err)
	return p
}

func f64At(t *testing.T, a *ndarray.Array, idx ...int) float64 {
	t.Helper()
	flat := ndarray.Ravel(idx, ndarray.Strides(a.Shape()))
	v, ok := a.Float64At(flat)
	require.True(t, ok, "value at %v is masked", idx)
	return v
}

// Linear interpolation of a linear series is exact, whatever the zone
// length.
func TestLinearExact(t *testing.T) {
	for _, n := range []int{2, 3, 11} {
		last := n - 1
		src := memSource(t, api.TypeFloat64,
			[]float64{5, 5 + 3*float64(last)}, []int{2}, nil)
		a, err := NewSampled(src, []int{n}, "linear",
			map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, last)}, nil)
		require.NoError(t, err)
		out, err := a.Uncompress()
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			require.InDelta(t, 5+3*float64(i), f64At(t, out, i), 1e-12, "n=%d i=%d", n, i)
		}
	}
}

func TestLinearTwoZones(t *testing.T) {
	// Tie values 2*u at u = 0, 4, 10.
	src := memSource(t, api.TypeFloat64, []float64{0, 8, 20}, []int{3}, nil)
	a, err := NewSampled(src, []int{11}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4, 10)}, nil)
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	require.Equal(t, []int{11}, out.Shape())
	for u := 0; u <= 10; u++ {
		require.InDelta(t, 2*float64(u), f64At(t, out, u), 1e-12, "u=%d", u)
	}
}

// The shared tie point between adjacent zones is written exactly once
// and carries the tie value.
func TestZoneBoundaryContinuity(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{1, 7, 3}, []int{3}, nil)
	a, err := NewSampled(src, []int{9}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4, 8)}, nil)
	require.NoError(t, err)

	subs := a.Subarrays()
	require.Len(t, subs, 2)
	require.Equal(t, api.Region{{Begin: 0, End: 5}}, subs[0].U)
	require.Equal(t, api.Region{{Begin: 5, End: 9}}, subs[1].U)

	out, err := a.Uncompress()
	require.NoError(t, err)
	require.Equal(t, 7.0, f64At(t, out, 4))
	require.Equal(t, 1.0, f64At(t, out, 0))
	require.Equal(t, 3.0, f64At(t, out, 8))
}

// An adjacent tie point pair marks an interpolation area boundary; the
// single-step zone between decodes as a copy.
func TestAreaBoundaryCopies(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 8, 100, 106}, []int{4}, nil)
	a, err := NewSampled(src, []int{8}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4, 5, 7)}, nil)
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	want := []float64{0, 2, 4, 6, 8, 100, 103, 106}
	for u, w := range want {
		require.InDelta(t, w, f64At(t, out, u), 1e-12, "u=%d", u)
	}
}

func TestQuadratic(t *testing.T) {
	w := paramOf(t, []float64{2}, []int{1}, []int{0})
	src := memSource(t, api.TypeFloat64, []float64{0, 10}, []int{2}, nil)
	a, err := NewSampled(src, []int{5}, "quadratic",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4)},
		map[string]*auxvar.InterpolationParameter{"w": w})
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		s := float64(i) / 4
		want := (1-s)*0 + s*10 + 4*2*s*(1-s)
		require.InDelta(t, want, f64At(t, out, i), 1e-12, "i=%d", i)
	}
	// endpoints reproduce the tie values exactly
	require.Equal(t, 0.0, f64At(t, out, 0))
	require.Equal(t, 10.0, f64At(t, out, 4))
}

// Bilinear interpolation reproduces any plane exactly.
func TestBiLinear(t *testing.T) {
	plane := func(y, x int) float64 { return 2*float64(y) + 3*float64(x) + 1 }
	ties := []float64{
		plane(0, 0), plane(0, 6),
		plane(4, 0), plane(4, 6),
	}
	src := memSource(t, api.TypeFloat64, ties, []int{2, 2}, nil)
	a, err := NewSampled(src, []int{5, 7}, "bi_linear",
		map[int]*auxvar.TiePointIndex{
			0: tiePoints(t, 0, 4),
			1: tiePoints(t, 0, 6),
		}, nil)
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			require.InDelta(t, plane(y, x), f64At(t, out, y, x), 1e-12, "y=%d x=%d", y, x)
		}
	}
}

func TestQuadraticLongitudeWrap(t *testing.T) {
	w := paramOf(t, []float64{0}, []int{1}, []int{0})
	src := memSource(t, api.TypeFloat64, []float64{170, -170}, []int{2}, nil)
	a, err := NewSampled(src, []int{5}, "quadratic_latitude_longitude",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4)},
		map[string]*auxvar.InterpolationParameter{"w": w})
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	want := []float64{170, 175, 180, -175, -170}
	for u, lon := range want {
		require.InDelta(t, lon, f64At(t, out, u), 1e-12, "u=%d", u)
	}
}

// With flat rows the outer blend collapses to the column value plus
// the w1 curvature term; corners reproduce the tie values exactly.
func TestBiQuadraticLatitudeLongitude(t *testing.T) {
	w1 := paramOf(t, []float64{2}, []int{1, 1}, []int{0, 1})
	w2 := paramOf(t, []float64{0}, []int{1, 1}, []int{0, 1})
	src := memSource(t, api.TypeFloat64, []float64{0, 10, 0, 10}, []int{2, 2}, nil)
	a, err := NewSampled(src, []int{3, 3}, "bi_quadratic_latitude_longitude",
		map[int]*auxvar.TiePointIndex{
			0: tiePoints(t, 0, 2),
			1: tiePoints(t, 0, 2),
		},
		map[string]*auxvar.InterpolationParameter{"w1": w1, "w2": w2})
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		s0 := float64(y) / 2
		for x := 0; x < 3; x++ {
			want := 5*float64(x) + 4*2*s0*(1-s0)
			require.InDelta(t, want, f64At(t, out, y, x), 1e-12, "y=%d x=%d", y, x)
		}
	}
	require.Equal(t, 0.0, f64At(t, out, 0, 0))
	require.Equal(t, 10.0, f64At(t, out, 2, 2))
}

func TestBiQuadraticLongitudeWrap(t *testing.T) {
	w1 := paramOf(t, []float64{0}, []int{1, 1}, []int{0, 1})
	w2 := paramOf(t, []float64{0}, []int{1, 1}, []int{0, 1})
	src := memSource(t, api.TypeFloat64, []float64{170, -170, 170, -170}, []int{2, 2}, nil)
	a, err := NewSampled(src, []int{3, 3}, "bi_quadratic_latitude_longitude",
		map[int]*auxvar.TiePointIndex{
			0: tiePoints(t, 0, 2),
			1: tiePoints(t, 0, 2),
		},
		map[string]*auxvar.InterpolationParameter{"w1": w1, "w2": w2})
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	want := []float64{170, 180, -170}
	for y := 0; y < 3; y++ {
		for x, lon := range want {
			require.InDelta(t, lon, f64At(t, out, y, x), 1e-12, "y=%d x=%d", y, x)
		}
	}
}

func TestSampledMaskedTiePoint(t *testing.T) {
	attrs := util.AttrsOf("_FillValue", float64(-999))
	src := memSource(t, api.TypeFloat64, []float64{0, -999, 20}, []int{3}, attrs)
	a, err := NewSampled(src, []int{11}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 5, 10)}, nil)
	require.NoError(t, err)
	out, err := a.Uncompress()
	require.NoError(t, err)
	for u := 0; u <= 10; u++ {
		flat := ndarray.Ravel([]int{u}, ndarray.Strides(out.Shape()))
		if u == 0 || u == 10 {
			require.False(t, out.Masked(flat), "u=%d", u)
		} else {
			require.True(t, out.Masked(flat), "u=%d", u)
		}
	}
}

func TestSampledUnknownMethod(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 1}, []int{2}, nil)
	_, err := NewSampled(src, []int{4}, "cubic",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 3)}, nil)
	require.ErrorIs(t, err, ErrInterpolation)
	require.ErrorIs(t, err, api.ErrConfig)
}

func TestSampledMissingTerm(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 1}, []int{2}, nil)
	_, err := NewSampled(src, []int{4}, "quadratic",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 3)}, nil)
	require.ErrorIs(t, err, ErrParameter)
}

// A parameter term whose length along an interpolated axis matches
// neither the zone count nor 1 is rejected at construction.
func TestSampledParameterShape(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 1, 2, 3}, []int{4}, nil)
	w := paramOf(t, []float64{5, 6}, []int{2}, []int{0})
	_, err := NewSampled(src, []int{10}, "quadratic",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 3, 6, 9)},
		map[string]*auxvar.InterpolationParameter{"w": w})
	require.ErrorIs(t, err, ErrParameter)
	require.ErrorIs(t, err, api.ErrConfig)

	// one value per zone is the right length
	w3 := paramOf(t, []float64{5, 6, 7}, []int{3}, []int{0})
	_, err = NewSampled(src, []int{10}, "quadratic",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 3, 6, 9)},
		map[string]*auxvar.InterpolationParameter{"w": w3})
	require.NoError(t, err)
}

func TestSampledCoverage(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 1}, []int{2}, nil)
	_, err := NewSampled(src, []int{6}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 3)}, nil)
	require.ErrorIs(t, err, api.ErrGeometry)
}

// Zones of equal length share one cached coefficient vector per axis.
func TestCoefficientCache(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{0, 8, 16}, []int{3}, nil)
	a, err := NewSampled(src, []int{9}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4, 8)}, nil)
	require.NoError(t, err)
	st, err := a.newDecodeState()
	require.NoError(t, err)
	for _, sub := range a.Subarrays() {
		require.NoError(t, st.decodeInto(ndarray.NewMaskedAll(api.TypeFloat64, 9), sub))
	}
	require.Len(t, st.scache, 1)
}

// A selection that only touches tie points is answered from the tie
// values directly, and Get still returns the exact same numbers.
func TestTiePointSelection(t *testing.T) {
	src := memSource(t, api.TypeFloat64, []float64{10, 50, 30}, []int{3}, nil)
	a, err := NewSampled(src, []int{11}, "linear",
		map[int]*auxvar.TiePointIndex{0: tiePoints(t, 0, 4, 10)}, nil)
	require.NoError(t, err)

	st, err := a.newDecodeState()
	require.NoError(t, err)
	out, served, err := st.tiePointsOnly([]api.Index{api.Pick(0, 4, 10)})
	require.NoError(t, err)
	require.True(t, served)
	require.Equal(t, []int{3}, out.Shape())
	require.Equal(t, 10.0, f64At(t, out, 0))
	require.Equal(t, 50.0, f64At(t, out, 1))
	require.Equal(t, 30.0, f64At(t, out, 2))

	_, served, err = st.tiePointsOnly([]api.Index{api.At(7)})
	require.NoError(t, err)
	require.False(t, served)

	// Get agrees with the fast path.
	got, err := a.Get(api.Pick(0, 4, 10))
	require.NoError(t, err)
	require.Equal(t, []int{3}, got.Shape())
	require.Equal(t, 50.0, f64At(t, got, 1))
}

func TestSampledSubarraysTileDisjointly(t *testing.T) {
	src := memSource(t, api.TypeFloat64, make([]float64, 9), []int{3, 3}, nil)
	a, err := NewSampled(src, []int{7, 5}, "bi_linear",
		map[int]*auxvar.TiePointIndex{
			0: tiePoints(t, 0, 2, 6),
			1: tiePoints(t, 0, 2, 4),
		}, nil)
	require.NoError(t, err)
	seen := make([]int, 7*5)
	for _, sub := range a.Subarrays() {
		for y := sub.U[0].Begin; y < sub.U[0].End; y++ {
			for x := sub.U[1].Begin; x < sub.U[1].End; x++ {
				seen[y*5+x]++
			}
		}
	}
	for p, n := range seen {
		require.Equal(t, 1, n, "position %d covered %d times", p, n)
	}
}
