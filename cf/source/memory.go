package source

import (
	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// Mem is a Source over a flat typed slice held in memory.
type Mem struct {
	arr   *ndarray.Array
	attrs api.AttributeMap
}

// NewMem builds an in-memory source.  data is a flat row-major slice
// matching t; a nil attrs means no attributes.
func NewMem(t api.Type, data any, shape []int, attrs api.AttributeMap) (*Mem, error) {
	arr, err := ndarray.FromSlice(t, data, shape...)
	if err != nil {
		return nil, err
	}
	if attrs == nil {
		attrs = util.NewAttrMap()
	}
	return &Mem{arr: arr, attrs: attrs}, nil
}

func (m *Mem) Shape() []int {
	return m.arr.Shape()
}

func (m *Mem) Type() api.Type {
	return m.arr.Type()
}

func (m *Mem) Attributes() api.AttributeMap {
	return m.attrs
}

func (m *Mem) Read(r api.Region) (any, error) {
	sub, err := m.arr.Extract(r)
	if err != nil {
		return nil, err
	}
	return sub.Data(), nil
}
