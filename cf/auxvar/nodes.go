package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// NodeCoordinates holds the coordinate values of a UGRID mesh's nodes,
// addressed by connectivity indices during a nodes-to-bounds decode.
type NodeCoordinates struct {
	values *ndarray.Array
}

// NewNodeCoordinates reads a node coordinate variable from a source.
func NewNodeCoordinates(src api.Source, log *util.Logger) (*NodeCoordinates, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	return NodeCoordinatesOf(a)
}

// NodeCoordinatesOf wraps a decoded 1-d array as node coordinates.
func NodeCoordinatesOf(a *ndarray.Array) (*NodeCoordinates, error) {
	if !a.Type().IsNumeric() {
		return nil, fmt.Errorf("node coordinates: %w", ErrNotNumeric)
	}
	if a.NDim() != 1 {
		return nil, fmt.Errorf("%w: node coordinates must be 1-d, have shape %v",
			api.ErrGeometry, a.Shape())
	}
	return &NodeCoordinates{values: a}, nil
}

// Len returns the number of nodes.
func (nc *NodeCoordinates) Len() int {
	return nc.values.Size()
}

// Type returns the coordinate element type.
func (nc *NodeCoordinates) Type() api.Type {
	return nc.values.Type()
}

// At returns the coordinate of node i and whether it is unmasked.
func (nc *NodeCoordinates) At(i int) (any, bool) {
	if nc.values.Masked(i) {
		return nil, false
	}
	return nc.values.ValueAt(i), true
}
