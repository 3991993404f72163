package compressed

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/auxvar"
	"github.com/batchatco/go-cf-arrays/cf/codec"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// Array describes one compressed variable: the physical source holding
// the compressed values, the auxiliary variables that drive the
// decoding, and the logical (uncompressed) shape.  All geometry checks
// that do not require reading the physical values happen at
// construction, so a successfully built Array decodes without
// structural surprises.
type Array struct {
	ctype CType
	shape []int
	src   api.Source
	phys  []int // physical shape after the value codec
	log   *util.Logger

	// ragged
	count *auxvar.Count
	index *auxvar.Index
	rows  [][]int // instance -> physical rows or profile ordinals

	// gathered
	list       *auxvar.List
	sampleAxis int
	gathered   []int

	// sampled
	interp string
	tps    map[int]*auxvar.TiePointIndex
	params map[string]*auxvar.InterpolationParameter
	zones  map[int][]zone

	// nodes bounds
	nodes      *auxvar.NodeCoordinates
	startIndex int
}

// An Option adjusts Array construction.
type Option func(*Array)

// WithLogger routes decode-time warnings to l instead of discarding
// them.
func WithLogger(l *util.Logger) Option {
	return func(a *Array) { a.log = l }
}

// CompressionType returns the compression type tag.
func (a *Array) CompressionType() CType {
	return a.ctype
}

// Shape returns the logical, uncompressed shape.
func (a *Array) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// NDim returns the number of logical dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Size returns the number of logical elements.
func (a *Array) Size() int {
	n := 1
	for _, s := range a.shape {
		n *= s
	}
	return n
}

// Type returns the element type of decoded values.  Sampled arrays
// always decode to float64; the others inherit the physical type as
// transformed by the value codec.
func (a *Array) Type() api.Type {
	switch a.ctype {
	case Sampled:
		return api.TypeFloat64
	case NodesBounds:
		return a.nodes.Type()
	default:
		return codec.ResultType(a.src.Type(), a.src.Attributes())
	}
}

// CompressedDimensions maps each compressed physical axis to the
// logical axes it expands into.
func (a *Array) CompressedDimensions() map[int][]int {
	out := make(map[int][]int)
	switch a.ctype {
	case RaggedContiguous, RaggedIndexed:
		out[0] = []int{0, 1}
	case RaggedIndexedContiguous:
		out[0] = []int{0, 1, 2}
	case Gathered:
		dims := make([]int, len(a.gathered))
		copy(dims, a.gathered)
		out[a.sampleAxis] = dims
	case Sampled:
		for d := range a.tps {
			out[d] = []int{d}
		}
	case NodesBounds:
		out[0] = []int{0}
		out[1] = []int{1}
	}
	return out
}

// Interpolation returns the interpolation method of a sampled array,
// or "" for the other compression types.
func (a *Array) Interpolation() string {
	return a.interp
}

func prod(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// decodedShape is the physical shape as the value codec delivers it:
// a char array loses its trailing string-length axis.
func decodedShape(src api.Source) []int {
	phys := src.Shape()
	if src.Type() != api.TypeChar {
		return phys
	}
	if len(phys) <= 1 {
		return []int{1}
	}
	return phys[:len(phys)-1]
}

func checkShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: empty uncompressed shape", ErrShapeMismatch)
	}
	for _, s := range shape {
		if s < 0 {
			return fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, s)
		}
	}
	return nil
}

// NewRaggedContiguous builds a descriptor for a contiguous ragged
// array.  The physical array holds one sample dimension followed by
// any trailing per-sample axes; shape is (instance, element, trailing
// axes).  count gives the element run length of each instance.
func NewRaggedContiguous(src api.Source, shape []int, count *auxvar.Count, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	phys := decodedShape(src)
	if len(shape) != len(phys)+1 || len(phys) < 1 {
		return nil, fmt.Errorf("%w: shape %v does not expand physical shape %v",
			ErrShapeMismatch, shape, phys)
	}
	if count.Total() != phys[0] {
		return nil, fmt.Errorf("%w: sum %d, sample dimension %d",
			ErrCountMismatch, count.Total(), phys[0])
	}
	if count.Len() != shape[0] {
		return nil, fmt.Errorf("%w: %d counts for %d instances",
			ErrShapeMismatch, count.Len(), shape[0])
	}
	if count.Max() > shape[1] {
		return nil, fmt.Errorf("%w: longest run %d exceeds element dimension %d",
			ErrShapeMismatch, count.Max(), shape[1])
	}
	for i := 1; i < len(phys); i++ {
		if phys[i] != shape[i+1] {
			return nil, fmt.Errorf("%w: trailing axis %d is %d physically, %d logically",
				ErrShapeMismatch, i, phys[i], shape[i+1])
		}
	}
	a := &Array{ctype: RaggedContiguous, shape: cloneInts(shape), src: src, phys: phys, count: count}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// NewRaggedIndexed builds a descriptor for an indexed ragged array.
// index assigns each physical sample to its instance; samples of one
// instance keep their physical order.
func NewRaggedIndexed(src api.Source, shape []int, index *auxvar.Index, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	phys := decodedShape(src)
	if len(shape) != len(phys)+1 || len(phys) < 1 {
		return nil, fmt.Errorf("%w: shape %v does not expand physical shape %v",
			ErrShapeMismatch, shape, phys)
	}
	if index.Len() != phys[0] {
		return nil, fmt.Errorf("%w: %d index entries for sample dimension %d",
			ErrShapeMismatch, index.Len(), phys[0])
	}
	rows, err := index.Rows(shape[0])
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) > shape[1] {
			return nil, fmt.Errorf("%w: instance %d has %d samples, element dimension %d",
				ErrShapeMismatch, i, len(r), shape[1])
		}
	}
	for i := 1; i < len(phys); i++ {
		if phys[i] != shape[i+1] {
			return nil, fmt.Errorf("%w: trailing axis %d is %d physically, %d logically",
				ErrShapeMismatch, i, phys[i], shape[i+1])
		}
	}
	a := &Array{ctype: RaggedIndexed, shape: cloneInts(shape), src: src, phys: phys, index: index, rows: rows}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// NewRaggedIndexedContiguous builds a descriptor for the two-level
// ragged encoding: count gives each profile's run length along the
// sample dimension and index assigns each profile to its instance.
// shape is (instance, profile, element).
func NewRaggedIndexedContiguous(src api.Source, shape []int, count *auxvar.Count, index *auxvar.Index, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	phys := decodedShape(src)
	if len(shape) != 3 || len(phys) != 1 {
		return nil, fmt.Errorf("%w: indexed contiguous needs a 1-d physical array and a 3-d shape, got %v and %v",
			ErrShapeMismatch, phys, shape)
	}
	if count.Len() != index.Len() {
		return nil, fmt.Errorf("%w: %d counts for %d indexed profiles",
			ErrShapeMismatch, count.Len(), index.Len())
	}
	if count.Total() != phys[0] {
		return nil, fmt.Errorf("%w: sum %d, sample dimension %d",
			ErrCountMismatch, count.Total(), phys[0])
	}
	rows, err := index.Rows(shape[0])
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) > shape[1] {
			return nil, fmt.Errorf("%w: instance %d has %d profiles, profile dimension %d",
				ErrShapeMismatch, i, len(r), shape[1])
		}
	}
	if count.Max() > shape[2] {
		return nil, fmt.Errorf("%w: longest run %d exceeds element dimension %d",
			ErrShapeMismatch, count.Max(), shape[2])
	}
	a := &Array{
		ctype: RaggedIndexedContiguous,
		shape: cloneInts(shape),
		src:   src,
		phys:  phys,
		count: count,
		index: index,
		rows:  rows,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// NewGathered builds a descriptor for compression by gathering.  The
// physical axis sampleAxis holds one entry per unmasked point; list
// maps each entry to its flat position over the logical axes named by
// gathered, which must form a consecutive run starting at sampleAxis.
func NewGathered(src api.Source, shape []int, sampleAxis int, gathered []int, list *auxvar.List, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	phys := decodedShape(src)
	if sampleAxis < 0 || sampleAxis >= len(phys) {
		return nil, fmt.Errorf("%w: sample axis %d outside physical shape %v",
			ErrShapeMismatch, sampleAxis, phys)
	}
	if len(gathered) == 0 {
		return nil, fmt.Errorf("%w: no gathered axes", ErrShapeMismatch)
	}
	for i, d := range gathered {
		if d != sampleAxis+i {
			return nil, fmt.Errorf("%w: gathered axes %v are not consecutive from axis %d",
				ErrShapeMismatch, gathered, sampleAxis)
		}
		if d >= len(shape) {
			return nil, fmt.Errorf("%w: gathered axis %d outside shape %v",
				ErrShapeMismatch, d, shape)
		}
	}
	if len(shape) != len(phys)+len(gathered)-1 {
		return nil, fmt.Errorf("%w: shape %v does not expand physical shape %v",
			ErrShapeMismatch, shape, phys)
	}
	if list.Len() != phys[sampleAxis] {
		return nil, fmt.Errorf("%w: %d list entries for sample axis of %d",
			ErrShapeMismatch, list.Len(), phys[sampleAxis])
	}
	gshape := make([]int, len(gathered))
	for i, d := range gathered {
		gshape[i] = shape[d]
	}
	if err := list.Validate(prod(gshape)); err != nil {
		return nil, err
	}
	for i := 0; i < sampleAxis; i++ {
		if phys[i] != shape[i] {
			return nil, fmt.Errorf("%w: leading axis %d is %d physically, %d logically",
				ErrShapeMismatch, i, phys[i], shape[i])
		}
	}
	for i := sampleAxis + 1; i < len(phys); i++ {
		if phys[i] != shape[i+len(gathered)-1] {
			return nil, fmt.Errorf("%w: trailing axis %d is %d physically, %d logically",
				ErrShapeMismatch, i, phys[i], shape[i+len(gathered)-1])
		}
	}
	a := &Array{
		ctype:      Gathered,
		shape:      cloneInts(shape),
		src:        src,
		phys:       phys,
		list:       list,
		sampleAxis: sampleAxis,
		gathered:   cloneInts(gathered),
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Interpolation methods understood by NewSampled, with the number of
// tie point axes each one couples.
var interpAxes = map[string]int{
	"linear":                          1,
	"quadratic":                       1,
	"quadratic_latitude_longitude":    1,
	"bi_linear":                       2,
	"bi_quadratic_latitude_longitude": 2,
}

// Parameter terms each interpolation method requires.
var interpTerms = map[string][]string{
	"quadratic":                       {"w"},
	"quadratic_latitude_longitude":    {"w"},
	"bi_quadratic_latitude_longitude": {"w1", "w2"},
}

// NewSampled builds a descriptor for a subsampled (tie point) array.
// tps maps each interpolated logical axis to its tie point index
// variable; params holds the interpolation parameter terms.  Decoded
// values are always float64.
func NewSampled(src api.Source, shape []int, interp string, tps map[int]*auxvar.TiePointIndex, params map[string]*auxvar.InterpolationParameter, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	want, known := interpAxes[interp]
	if !known {
		return nil, fmt.Errorf("%w: unknown method %q", ErrInterpolation, interp)
	}
	if len(tps) != want {
		return nil, fmt.Errorf("%w: method %q couples %d axes, got %d tie point indices",
			ErrInterpolation, interp, want, len(tps))
	}
	phys := decodedShape(src)
	if len(phys) != len(shape) {
		return nil, fmt.Errorf("%w: tie point array rank %d, shape rank %d",
			ErrShapeMismatch, len(phys), len(shape))
	}
	zones := make(map[int][]zone, len(tps))
	for d, tp := range tps {
		if d < 0 || d >= len(shape) {
			return nil, fmt.Errorf("%w: interpolated axis %d outside shape %v",
				ErrShapeMismatch, d, shape)
		}
		if err := tp.Validate(shape[d]); err != nil {
			return nil, err
		}
		if tp.Len() != phys[d] {
			return nil, fmt.Errorf("%w: %d tie points for physical axis of %d",
				ErrShapeMismatch, tp.Len(), phys[d])
		}
		zones[d] = zonesOf(tp)
	}
	for d := 0; d < len(shape); d++ {
		if _, interpolated := tps[d]; interpolated {
			continue
		}
		if phys[d] != shape[d] {
			return nil, fmt.Errorf("%w: non-interpolated axis %d is %d physically, %d logically",
				ErrShapeMismatch, d, phys[d], shape[d])
		}
	}
	for _, term := range interpTerms[interp] {
		if _, has := params[term]; !has {
			return nil, fmt.Errorf("%w: method %q needs term %q", ErrParameter, interp, term)
		}
	}
	for term, p := range params {
		pshape := p.Shape()
		for k, d := range p.Dims() {
			if d < 0 || d >= len(shape) {
				return nil, fmt.Errorf("%w: term %q maps axis %d onto tie point axis %d of a rank %d array",
					ErrParameter, term, k, d, len(shape))
			}
			// one value per zone along interpolated axes, per
			// position along the rest; size 1 broadcasts
			want := shape[d]
			if zs, interpolated := zones[d]; interpolated {
				want = len(zs)
			}
			if pshape[k] != 1 && pshape[k] != want {
				return nil, fmt.Errorf("%w: term %q has %d values along tie point axis %d, want 1 or %d",
					ErrParameter, term, pshape[k], d, want)
			}
		}
	}
	a := &Array{
		ctype:  Sampled,
		shape:  cloneInts(shape),
		src:    src,
		phys:   phys,
		interp: interp,
		tps:    tps,
		params: params,
		zones:  zones,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// NewNodesBounds builds a descriptor for UGRID cell bounds encoded as
// node connectivity.  The physical array is the (cell, vertex)
// connectivity; nodes holds the coordinate of each node and startIndex
// says whether connectivity entries count from 0 or 1.
func NewNodesBounds(src api.Source, shape []int, nodes *auxvar.NodeCoordinates, startIndex int, opts ...Option) (*Array, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if startIndex != 0 && startIndex != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrStartIndex, startIndex)
	}
	phys := decodedShape(src)
	if len(phys) != 2 || len(shape) != 2 || phys[0] != shape[0] || phys[1] != shape[1] {
		return nil, fmt.Errorf("%w: connectivity shape %v, bounds shape %v",
			ErrShapeMismatch, phys, shape)
	}
	a := &Array{
		ctype:      NodesBounds,
		shape:      cloneInts(shape),
		src:        src,
		phys:       phys,
		nodes:      nodes,
		startIndex: startIndex,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

func cloneInts(v []int) []int {
	out := make([]int, len(v))
	copy(out, v)
	return out
}
