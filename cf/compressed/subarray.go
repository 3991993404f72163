package compressed

import (
	"sort"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/auxvar"
)

// A zone is the span between two consecutive tie points along one
// interpolated axis.  Interpolation always reproduces the tie values
// at both endpoints, so zones share endpoint values; to tile the axis
// disjointly every zone but the first cedes its leading point to its
// predecessor.  An adjacent tie point pair (a single-step zone) marks
// an interpolation area boundary and decodes as a plain copy.
type zone struct {
	a, b  int // tie point ordinals
	ua    int // uncompressed position of tie point a
	ub    int // uncompressed position of tie point b
	first bool
	ord   int // zone ordinal along the axis, indexes parameter terms
}

func zonesOf(tp *auxvar.TiePointIndex) []zone {
	zones := make([]zone, 0, tp.Len()-1)
	for i := 0; i+1 < tp.Len(); i++ {
		zones = append(zones, zone{
			a:     i,
			b:     i + 1,
			ua:    tp.At(i),
			ub:    tp.At(i + 1),
			first: i == 0,
			ord:   i,
		})
	}
	return zones
}

// A Subarray is one independently decodable piece of the logical
// array.  U is the region it fills in the uncompressed index space and
// C the physical region it reads; the U regions of all subarrays tile
// the logical array disjointly.
type Subarray struct {
	U     api.Region
	C     api.Region
	Shape []int

	rows  []int        // indexed ragged: physical rows in logical order
	zones map[int]zone // sampled: interpolated axis -> zone
}

// Subarrays returns the decomposition of the array into independently
// decodable pieces, in the order a full decode visits them.
func (a *Array) Subarrays() []Subarray {
	switch a.ctype {
	case RaggedContiguous:
		return a.contiguousSubarrays()
	case RaggedIndexed:
		return a.indexedSubarrays()
	case RaggedIndexedContiguous:
		return a.indexedContiguousSubarrays()
	case Gathered:
		return a.gatheredSubarrays()
	case Sampled:
		return a.sampledSubarrays()
	default:
		return a.nodesBoundsSubarrays()
	}
}

func (a *Array) contiguousSubarrays() []Subarray {
	phys := a.phys
	subs := make([]Subarray, 0, a.count.Len())
	for i := 0; i < a.count.Len(); i++ {
		n := a.count.At(i)
		off := a.count.Offset(i)
		u := api.Region{{Begin: i, End: i + 1}, {Begin: 0, End: n}}
		c := api.Region{{Begin: off, End: off + n}}
		shape := []int{1, n}
		for j := 1; j < len(phys); j++ {
			u = append(u, api.Range{Begin: 0, End: phys[j]})
			c = append(c, api.Range{Begin: 0, End: phys[j]})
			shape = append(shape, phys[j])
		}
		subs = append(subs, Subarray{U: u, C: c, Shape: shape})
	}
	return subs
}

func (a *Array) indexedSubarrays() []Subarray {
	phys := a.phys
	subs := make([]Subarray, 0, len(a.rows))
	for i, rows := range a.rows {
		u := api.Region{{Begin: i, End: i + 1}, {Begin: 0, End: len(rows)}}
		c := api.Region{boundingRange(rows)}
		shape := []int{1, len(rows)}
		for j := 1; j < len(phys); j++ {
			u = append(u, api.Range{Begin: 0, End: phys[j]})
			c = append(c, api.Range{Begin: 0, End: phys[j]})
			shape = append(shape, phys[j])
		}
		subs = append(subs, Subarray{U: u, C: c, Shape: shape, rows: rows})
	}
	return subs
}

func (a *Array) indexedContiguousSubarrays() []Subarray {
	var subs []Subarray
	for i, profiles := range a.rows {
		for j, p := range profiles {
			n := a.count.At(p)
			off := a.count.Offset(p)
			subs = append(subs, Subarray{
				U: api.Region{
					{Begin: i, End: i + 1},
					{Begin: j, End: j + 1},
					{Begin: 0, End: n},
				},
				C:     api.Region{{Begin: off, End: off + n}},
				Shape: []int{1, 1, n},
			})
		}
	}
	return subs
}

// gatheredSubarrays yields one subarray per combination of
// pass-through axis positions, each covering the full gathered block.
func (a *Array) gatheredSubarrays() []Subarray {
	phys := a.phys
	passShape := make([]int, 0, len(phys)-1)
	for d, n := range phys {
		if d != a.sampleAxis {
			passShape = append(passShape, n)
		}
	}
	if prod(passShape) == 0 {
		return nil
	}
	var subs []Subarray
	pos := make([]int, len(passShape))
	for {
		u := make(api.Region, 0, len(a.shape))
		c := make(api.Region, 0, len(phys))
		shape := make([]int, 0, len(a.shape))
		k := 0
		for d := 0; d < len(phys); d++ {
			if d == a.sampleAxis {
				c = append(c, api.Range{Begin: 0, End: phys[d]})
				for _, g := range a.gathered {
					u = append(u, api.Range{Begin: 0, End: a.shape[g]})
					shape = append(shape, a.shape[g])
				}
				continue
			}
			c = append(c, api.Range{Begin: pos[k], End: pos[k] + 1})
			u = append(u, api.Range{Begin: pos[k], End: pos[k] + 1})
			shape = append(shape, 1)
			k++
		}
		subs = append(subs, Subarray{U: u, C: c, Shape: shape})
		if !advance(pos, passShape) {
			return subs
		}
	}
}

func (a *Array) sampledSubarrays() []Subarray {
	axes := make([]int, 0, len(a.zones))
	for d := range a.zones {
		axes = append(axes, d)
	}
	sort.Ints(axes)

	var subs []Subarray
	sel := make([]int, len(axes))
	counts := make([]int, len(axes))
	for i, d := range axes {
		counts[i] = len(a.zones[d])
	}
	for {
		zs := make(map[int]zone, len(axes))
		for i, d := range axes {
			zs[d] = a.zones[d][sel[i]]
		}
		u := make(api.Region, 0, len(a.shape))
		c := make(api.Region, 0, len(a.shape))
		shape := make([]int, 0, len(a.shape))
		for d := 0; d < len(a.shape); d++ {
			z, interpolated := zs[d]
			if !interpolated {
				u = append(u, api.Range{Begin: 0, End: a.shape[d]})
				c = append(c, api.Range{Begin: 0, End: a.shape[d]})
				shape = append(shape, a.shape[d])
				continue
			}
			begin := z.ua
			if !z.first {
				begin++ // the shared tie point belongs to the previous zone
			}
			u = append(u, api.Range{Begin: begin, End: z.ub + 1})
			c = append(c, api.Range{Begin: z.a, End: z.b + 1})
			shape = append(shape, z.ub+1-begin)
		}
		subs = append(subs, Subarray{U: u, C: c, Shape: shape, zones: zs})
		if !advance(sel, counts) {
			return subs
		}
	}
}

func (a *Array) nodesBoundsSubarrays() []Subarray {
	whole := api.WholeRegion(a.shape)
	return []Subarray{{U: whole, C: api.WholeRegion(a.phys), Shape: a.Shape()}}
}

func boundingRange(rows []int) api.Range {
	if len(rows) == 0 {
		return api.Range{}
	}
	r := api.Range{Begin: rows[0], End: rows[0] + 1}
	for _, p := range rows[1:] {
		if p < r.Begin {
			r.Begin = p
		}
		if p+1 > r.End {
			r.End = p + 1
		}
	}
	return r
}

// advance steps pos through the index space of shape in row-major
// order and reports whether another position remains.
func advance(pos, shape []int) bool {
	for i := len(pos) - 1; i >= 0; i-- {
		pos[i]++
		if pos[i] < shape[i] {
			return true
		}
		pos[i] = 0
	}
	return false
}
