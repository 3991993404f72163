package compressed

import (
	"fmt"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/codec"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
)

// decodeState carries the physical values, read and codec-decoded once
// per request, and the interpolation coefficient cache.  One state
// never outlives its request, so per-state caching needs no locks.
type decodeState struct {
	a      *Array
	pblock *ndarray.Array
	scache map[scacheKey][]float64
}

type scacheKey struct {
	axis int
	n    int
}

func (a *Array) newDecodeState() (*decodeState, error) {
	raw, err := api.SourceReadSlice(a.src)
	if err != nil {
		return nil, fmt.Errorf("%w: reading compressed values: %v", api.ErrAccess, err)
	}
	block, err := ndarray.FromSlice(a.src.Type(), raw, a.src.Shape()...)
	if err != nil {
		return nil, err
	}
	block, err = codec.Decode(block, a.src.Attributes(), codec.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	if a.ctype == Sampled {
		block, err = block.AsFloat64()
		if err != nil {
			return nil, fmt.Errorf("%w: tie points are not numeric", api.ErrGeometry)
		}
	}
	if !sameShape(block.Shape(), a.phys) {
		return nil, fmt.Errorf("%w: source delivered shape %v, expected %v",
			ErrShapeMismatch, block.Shape(), a.phys)
	}
	return &decodeState{a: a, pblock: block, scache: make(map[scacheKey][]float64)}, nil
}

// Uncompress decodes the whole array.
func (a *Array) Uncompress() (*ndarray.Array, error) {
	st, err := a.newDecodeState()
	if err != nil {
		return nil, err
	}
	out := ndarray.NewMaskedAll(a.Type(), a.shape...)
	for _, sub := range a.Subarrays() {
		if err := st.decodeInto(out, sub); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get decodes the subspace selected by orthogonal indexing, one Index
// per logical axis.  Subarrays that cannot contribute to the selection
// are not decoded.  With no indices Get is equivalent to Uncompress.
func (a *Array) Get(indices ...api.Index) (*ndarray.Array, error) {
	if len(indices) == 0 {
		return a.Uncompress()
	}
	if len(indices) != len(a.shape) {
		return nil, fmt.Errorf("%w: %d indices for %d axes",
			api.ErrIndex, len(indices), len(a.shape))
	}
	bounds := make(api.Region, len(indices))
	for d, ix := range indices {
		r, err := ix.Bounds(a.shape[d])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
		bounds[d] = r
	}
	st, err := a.newDecodeState()
	if err != nil {
		return nil, err
	}
	if a.ctype == Sampled {
		if out, served, err := st.tiePointsOnly(indices); served || err != nil {
			return out, err
		}
	}
	full := ndarray.NewMaskedAll(a.Type(), a.shape...)
	for _, sub := range a.Subarrays() {
		if !intersects(sub.U, bounds) {
			continue
		}
		if err := st.decodeInto(full, sub); err != nil {
			return nil, err
		}
	}
	return full.Subspace(indices...)
}

// AffectedPhysicalRegion reports the smallest physical region a decode
// restricted to the given selection reads, and whether such a
// narrowing exists.  Gathered and nodes-bounds decodes always read the
// whole physical array, so they report none.
func (a *Array) AffectedPhysicalRegion(indices ...api.Index) (api.Region, bool) {
	if a.ctype == Gathered || a.ctype == NodesBounds {
		return nil, false
	}
	if len(indices) == 0 {
		return api.WholeRegion(a.phys), true
	}
	if len(indices) != len(a.shape) {
		return nil, false
	}
	logical := make(api.Region, len(indices))
	for d, ix := range indices {
		r, err := ix.Bounds(a.shape[d])
		if err != nil {
			return nil, false
		}
		logical[d] = r
	}
	var out api.Region
	for _, sub := range a.Subarrays() {
		if !intersects(sub.U, logical) {
			continue
		}
		if out == nil {
			out = append(api.Region{}, sub.C...)
			continue
		}
		for d := range out {
			if sub.C[d].Begin < out[d].Begin {
				out[d].Begin = sub.C[d].Begin
			}
			if sub.C[d].End > out[d].End {
				out[d].End = sub.C[d].End
			}
		}
	}
	if out == nil {
		out = make(api.Region, len(a.phys))
	}
	return out, true
}

func (st *decodeState) decodeInto(out *ndarray.Array, sub Subarray) (err error) {
	defer thrower.RecoverError(&err)
	return out.SetRegion(sub.U, st.block(sub))
}

// block decodes one subarray.  The helpers below throw on internal
// failures; decodeInto catches.
func (st *decodeState) block(sub Subarray) *ndarray.Array {
	switch st.a.ctype {
	case RaggedContiguous, RaggedIndexedContiguous:
		return st.contiguousBlock(sub)
	case RaggedIndexed:
		return st.indexedBlock(sub)
	case Gathered:
		return st.gatheredBlock(sub)
	case Sampled:
		return st.sampledBlock(sub)
	default:
		return st.nodesBoundsBlock(sub)
	}
}

func (st *decodeState) contiguousBlock(sub Subarray) *ndarray.Array {
	block, err := st.pblock.Extract(sub.C)
	thrower.ThrowIfError(err)
	thrower.ThrowIfError(block.Reshape(sub.Shape...))
	return block
}

// indexedBlock gathers an instance's physical rows, which need not be
// adjacent, in their physical order.
func (st *decodeState) indexedBlock(sub Subarray) *ndarray.Array {
	indices := make([]api.Index, st.pblock.NDim())
	indices[0] = api.Pick(sub.rows...)
	for d := 1; d < len(indices); d++ {
		indices[d] = api.All()
	}
	block, err := st.pblock.Subspace(indices...)
	thrower.ThrowIfError(err)
	thrower.ThrowIfError(block.Reshape(sub.Shape...))
	return block
}

// gatheredBlock scatters the sample axis over the gathered axes.
// Positions no list entry names stay masked.
func (st *decodeState) gatheredBlock(sub Subarray) *ndarray.Array {
	a := st.a
	comp, err := st.pblock.Extract(sub.C)
	thrower.ThrowIfError(err)

	block := ndarray.NewMaskedAll(a.Type(), sub.Shape...)
	gshape := make([]int, len(a.gathered))
	for i, d := range a.gathered {
		gshape[i] = a.shape[d]
	}
	bstrides := ndarray.Strides(sub.Shape)
	n := a.phys[a.sampleAxis]
	for k := 0; k < n; k++ {
		if comp.Masked(k) {
			continue
		}
		pos := ndarray.Unravel(a.list.At(k), gshape)
		flat := 0
		for i, p := range pos {
			flat += p * bstrides[a.sampleAxis+i]
		}
		thrower.ThrowIfError(block.SetValueAt(flat, comp.ValueAt(k)))
	}
	return block
}

// nodesBoundsBlock resolves each connectivity entry to its node
// coordinate.  Masked entries and masked nodes stay masked.
func (st *decodeState) nodesBoundsBlock(sub Subarray) *ndarray.Array {
	a := st.a
	conn := st.pblock
	block := ndarray.NewMaskedAll(a.nodes.Type(), sub.Shape...)
	n := conn.Size()
	for i := 0; i < n; i++ {
		if conn.Masked(i) {
			continue
		}
		node, ok := conn.IntAt(i)
		if !ok {
			thrower.Throw(fmt.Errorf("%w: connectivity entry %d is not integral", api.ErrGeometry, i))
		}
		node -= a.startIndex
		if node < 0 || node >= a.nodes.Len() {
			thrower.Throw(fmt.Errorf("%w: node %d at entry %d, %d nodes",
				ErrConnectivity, node+a.startIndex, i, a.nodes.Len()))
		}
		v, ok := a.nodes.At(node)
		if !ok {
			continue
		}
		thrower.ThrowIfError(block.SetValueAt(i, v))
	}
	return block
}

func intersects(u, bounds api.Region) bool {
	for d, r := range u {
		if r.End <= bounds[d].Begin || r.Begin >= bounds[d].End {
			return false
		}
	}
	return true
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
