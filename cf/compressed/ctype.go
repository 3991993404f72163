// Package compressed implements the CF compression-by-convention
// encodings: ragged arrays (contiguous, indexed, indexed contiguous),
// compression by gathering, subsampled (tie point) arrays, and the
// UGRID nodes-to-bounds encoding.
//
// An Array is an immutable descriptor of one compressed variable.  It
// answers arbitrary subspace requests over the logical, uncompressed
// index space, decoding only through pure functions, so one Array may
// serve concurrent requests without locking.
package compressed

// CType is the compression type tag.
type CType int

const (
	RaggedContiguous CType = iota
	RaggedIndexed
	RaggedIndexedContiguous
	Gathered
	Sampled
	NodesBounds
)

var ctypeNames = map[CType]string{
	RaggedContiguous:        "ragged contiguous",
	RaggedIndexed:           "ragged indexed",
	RaggedIndexedContiguous: "ragged indexed contiguous",
	Gathered:                "gathered",
	Sampled:                 "sampled",
	NodesBounds:             "nodes bounds",
}

func (c CType) String() string {
	s, has := ctypeNames[c]
	if !has {
		return "unknown"
	}
	return s
}
