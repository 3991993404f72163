package api

import (
	"errors"
	"fmt"
)

var ErrIndex = errors.New("bad index")

type indexKind int

const (
	kindAll indexKind = iota
	kindAt
	kindSpan
	kindPick
)

// Index selects positions along one axis of an array.  Indices on
// different axes select independently ("orthogonal indexing"): an
// integer index keeps the axis with size 1 rather than dropping it.
type Index struct {
	kind indexKind
	at   int
	span Range
	pick []int
}

// All selects every position of the axis.
func All() Index {
	return Index{kind: kindAll}
}

// At selects the single position i.  The axis is kept with size 1.
func At(i int) Index {
	return Index{kind: kindAt, at: i}
}

// Span selects the half-open interval [begin, end).
func Span(begin, end int) Index {
	return Index{kind: kindSpan, span: Range{begin, end}}
}

// Pick selects the given positions, in order.  Positions may repeat.
func Pick(positions ...int) Index {
	p := make([]int, len(positions))
	copy(p, positions)
	return Index{kind: kindPick, pick: p}
}

// Where selects the positions whose flag is true.
func Where(flags ...bool) Index {
	var p []int
	for i, f := range flags {
		if f {
			p = append(p, i)
		}
	}
	return Index{kind: kindPick, pick: p}
}

// IsAll reports whether the index selects the whole axis unconditionally.
func (ix Index) IsAll() bool {
	return ix.kind == kindAll
}

// Positions resolves the index against an axis of length n, returning
// the selected positions in selection order.
func (ix Index) Positions(n int) ([]int, error) {
	switch ix.kind {
	case kindAll:
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		return p, nil
	case kindAt:
		if ix.at < 0 || ix.at >= n {
			return nil, fmt.Errorf("%w: position %d on axis of size %d", ErrIndex, ix.at, n)
		}
		return []int{ix.at}, nil
	case kindSpan:
		if ix.span.Begin < 0 || ix.span.End < ix.span.Begin || ix.span.End > n {
			return nil, fmt.Errorf("%w: span [%d, %d) on axis of size %d",
				ErrIndex, ix.span.Begin, ix.span.End, n)
		}
		p := make([]int, ix.span.Len())
		for i := range p {
			p[i] = ix.span.Begin + i
		}
		return p, nil
	case kindPick:
		p := make([]int, len(ix.pick))
		for i, pos := range ix.pick {
			if pos < 0 || pos >= n {
				return nil, fmt.Errorf("%w: position %d on axis of size %d", ErrIndex, pos, n)
			}
			p[i] = pos
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: unknown index kind", ErrIndex)
}

// Bounds returns the smallest range containing every selected position.
func (ix Index) Bounds(n int) (Range, error) {
	p, err := ix.Positions(n)
	if err != nil {
		return Range{}, err
	}
	if len(p) == 0 {
		return Range{}, nil
	}
	lo, hi := p[0], p[0]
	for _, pos := range p[1:] {
		if pos < lo {
			lo = pos
		}
		if pos > hi {
			hi = pos
		}
	}
	return Range{lo, hi + 1}, nil
}
