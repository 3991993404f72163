package compressed

import (
	"fmt"
	"sort"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/auxvar"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
)

// tiePointsOnly serves a selection whose positions along every
// interpolated axis all fall on tie points, straight from the tie
// point values.  Interpolation reproduces tie values exactly, so the
// result is identical to the full decode; it reports served=false when
// any selected position lies between tie points.
func (st *decodeState) tiePointsOnly(indices []api.Index) (out *ndarray.Array, served bool, err error) {
	a := st.a
	phys := make([]api.Index, len(indices))
	for d, ix := range indices {
		tp, interpolated := a.tps[d]
		if !interpolated {
			phys[d] = ix
			continue
		}
		positions, err := ix.Positions(a.shape[d])
		if err != nil {
			return nil, false, fmt.Errorf("axis %d: %w", d, err)
		}
		ords := make([]int, len(positions))
		for i, p := range positions {
			ord, onTiePoint := tiePointOrdinal(tp, p)
			if !onTiePoint {
				return nil, false, nil
			}
			ords[i] = ord
		}
		phys[d] = api.Pick(ords...)
	}
	out, err = st.pblock.Subspace(phys...)
	return out, true, err
}

func tiePointOrdinal(tp *auxvar.TiePointIndex, p int) (int, bool) {
	for t := 0; t < tp.Len(); t++ {
		if tp.At(t) == p {
			return t, true
		}
	}
	return 0, false
}

// sampledBlock reconstitutes one zone of a subsampled array.  It
// computes the dense block over the full zone span, both bounding tie
// points included, then trims the leading slice along every axis whose
// zone continues an interpolation area, so that adjacent zones tile
// the logical array without overlap.
func (st *decodeState) sampledBlock(sub Subarray) *ndarray.Array {
	a := st.a
	axes := make([]int, 0, len(sub.zones))
	for d := range sub.zones {
		axes = append(axes, d)
	}
	sort.Ints(axes)

	span := make([]int, len(a.shape))
	for d := 0; d < len(a.shape); d++ {
		if z, interpolated := sub.zones[d]; interpolated {
			span[d] = z.ub - z.ua + 1
		} else {
			span[d] = a.shape[d]
		}
	}

	corners := st.corners(sub, axes)
	cshape := make([]int, len(span))
	copy(cshape, span)
	for _, d := range axes {
		cshape[d] = 1
	}
	cstrides := ndarray.Strides(cshape)

	block := ndarray.NewMaskedAll(api.TypeFloat64, span...)
	pos := make([]int, len(span))
	flat := 0
	for {
		if v, ok := st.valueAt(sub, axes, corners, cstrides, pos); ok {
			thrower.ThrowIfError(block.SetValueAt(flat, v))
		}
		flat++
		if !advance(pos, span) {
			break
		}
	}

	trim := make(api.Region, 0, len(span))
	needTrim := false
	for d := 0; d < len(span); d++ {
		begin := 0
		if z, interpolated := sub.zones[d]; interpolated && !z.first {
			begin = 1
			needTrim = true
		}
		trim = append(trim, api.Range{Begin: begin, End: span[d]})
	}
	if needTrim {
		t, err := block.Extract(trim)
		thrower.ThrowIfError(err)
		block = t
	}
	return block
}

// corners extracts the tie point slab at each combination of zone
// endpoints.  Bit i of the slice index selects the far endpoint along
// axes[i].
func (st *decodeState) corners(sub Subarray, axes []int) []*ndarray.Array {
	a := st.a
	out := make([]*ndarray.Array, 1<<len(axes))
	for c := range out {
		region := make(api.Region, len(a.phys))
		for d := 0; d < len(a.phys); d++ {
			region[d] = api.Range{Begin: 0, End: a.phys[d]}
		}
		for i, d := range axes {
			z := sub.zones[d]
			tp := z.a
			if c&(1<<i) != 0 {
				tp = z.b
			}
			region[d] = api.Range{Begin: tp, End: tp + 1}
		}
		slab, err := st.pblock.Extract(region)
		thrower.ThrowIfError(err)
		out[c] = slab
	}
	return out
}

// valueAt evaluates the interpolation method at one block position.  A
// masked tie point or parameter masks the result.
func (st *decodeState) valueAt(sub Subarray, axes []int, corners []*ndarray.Array, cstrides, pos []int) (float64, bool) {
	cflat := 0
	for d, p := range pos {
		if _, interpolated := sub.zones[d]; !interpolated {
			cflat += p * cstrides[d]
		}
	}
	s := make([]float64, len(axes))
	for i, d := range axes {
		z := sub.zones[d]
		s[i] = st.svals(d, z.ub-z.ua+1)[pos[d]]
	}

	// A corner whose coefficient is zero at this position may be
	// masked without masking the result; at a zone endpoint only that
	// endpoint's tie value matters.
	switch st.a.interp {
	case "linear", "quadratic", "quadratic_latitude_longitude":
		s0 := s[0]
		ua, okA := corners[0].Float64At(cflat)
		ub, okB := corners[1].Float64At(cflat)
		if (s0 != 1 && !okA) || (s0 != 0 && !okB) {
			return 0, false
		}
		if st.a.interp == "linear" {
			return linear(ua, ub, s0), true
		}
		w := 0.0
		if s0 != 0 && s0 != 1 {
			var ok bool
			w, ok = st.paramAt("w", sub, pos)
			if !ok {
				return 0, false
			}
		}
		if st.a.interp == "quadratic" {
			return quadratic(ua, ub, w, s0), true
		}
		return quadraticLongitude(ua, ub, w, s0), true

	case "bi_linear", "bi_quadratic_latitude_longitude":
		s0, s1 := s[0], s[1]
		var v [4]float64
		for c := range v {
			need := true
			if (c&1 == 0 && s0 == 1) || (c&1 != 0 && s0 == 0) {
				need = false
			}
			if (c&2 == 0 && s1 == 1) || (c&2 != 0 && s1 == 0) {
				need = false
			}
			f, ok := corners[c].Float64At(cflat)
			if need && !ok {
				return 0, false
			}
			v[c] = f
		}
		if st.a.interp == "bi_linear" {
			u0 := linear(v[0], v[2], s1)
			u1 := linear(v[1], v[3], s1)
			return linear(u0, u1, s0), true
		}
		w1, w2 := 0.0, 0.0
		if s0 != 0 && s0 != 1 {
			var ok bool
			w1, ok = st.paramAt("w1", sub, pos)
			if !ok {
				return 0, false
			}
		}
		if s1 != 0 && s1 != 1 {
			var ok bool
			w2, ok = st.paramAt("w2", sub, pos)
			if !ok {
				return 0, false
			}
		}
		u0 := quadraticLongitude(v[0], v[2], w2, s1)
		u1 := quadraticLongitude(v[1], v[3], w2, s1)
		return quadraticLongitude(u0, u1, w1, s0), true
	}
	return 0, false
}

// paramAt looks a parameter term up in tie point axis space: zone
// ordinals along interpolated axes, block positions along the rest.
func (st *decodeState) paramAt(term string, sub Subarray, pos []int) (float64, bool) {
	p := st.a.params[term]
	if p == nil {
		return 0, false
	}
	tpIdx := make(map[int]int, len(pos))
	for d := range pos {
		if z, interpolated := sub.zones[d]; interpolated {
			tpIdx[d] = z.ord
		} else {
			tpIdx[d] = pos[d]
		}
	}
	return p.ValueAt(tpIdx)
}

// svals returns the n interpolation coefficients 0, 1/(n-1), ..., 1
// for one axis, cached per decode request.
func (st *decodeState) svals(axis, n int) []float64 {
	key := scacheKey{axis: axis, n: n}
	if s, cached := st.scache[key]; cached {
		return s
	}
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i) / float64(n-1)
	}
	st.scache[key] = s
	return s
}

func linear(ua, ub, s float64) float64 {
	return (1-s)*ua + s*ub
}

func quadratic(ua, ub, w, s float64) float64 {
	return (1-s)*ua + s*ub + 4*w*s*(1-s)
}

// quadraticLongitude blends along the shorter arc across the
// antimeridian and folds the result back into (-180, 180].
func quadraticLongitude(ua, ub, w, s float64) float64 {
	switch {
	case ub-ua > 180:
		ub -= 360
	case ua-ub > 180:
		ub += 360
	}
	return foldLongitude(quadratic(ua, ub, w, s))
}

func foldLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon
}
