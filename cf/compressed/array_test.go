package compressed

import (
	"testing"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/auxvar"
	"github.com/batchatco/go-cf-arrays/cf/source"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

func TestCompressedDimensions(t *testing.T) {
	src := memSource(t, api.TypeFloat64, make([]float64, 5), []int{5}, nil)
	count, _ := auxvar.CountOf(3, 2)
	a, err := NewRaggedContiguous(src, []int{2, 3}, count)
	if err != nil {
		t.Fatal(err)
	}
	dims := a.CompressedDimensions()
	if len(dims) != 1 || len(dims[0]) != 2 || dims[0][0] != 0 || dims[0][1] != 1 {
		t.Errorf("dims = %v, want {0: [0 1]}", dims)
	}
	if a.CompressionType() != RaggedContiguous {
		t.Errorf("type = %v", a.CompressionType())
	}
	if a.CompressionType().String() != "ragged contiguous" {
		t.Errorf("type string = %q", a.CompressionType())
	}
}

// Unpacking attributes on the physical variable flow through to the
// logical element type without reading any data.
func TestTypeFollowsCodec(t *testing.T) {
	attrs := util.AttrsOf("scale_factor", float32(0.5))
	src := memSource(t, api.TypeInt16, []int16{2, 4, 6}, []int{3}, attrs)
	count, _ := auxvar.CountOf(2, 1)
	a, err := NewRaggedContiguous(src, []int{2, 2}, count)
	if err != nil {
		t.Fatal(err)
	}
	if a.Type() != api.TypeFloat32 {
		t.Fatalf("type = %v, want float", a.Type())
	}
	out, err := a.Uncompress()
	if err != nil {
		t.Fatal(err)
	}
	if out.Type() != api.TypeFloat32 {
		t.Fatalf("decoded type = %v, want float", out.Type())
	}
	checkValue(t, out, 1, 0, 0)
	checkValue(t, out, 3, 1, 0)
}

// The decoder only sees the Source interface; a zstd-backed source
// behaves exactly like a plain one.
func TestZstdBackedRagged(t *testing.T) {
	payload, err := source.CompressZstd([]float64{10, 11, 20})
	if err != nil {
		t.Fatal(err)
	}
	src := source.NewZstd(api.TypeFloat64, payload, []int{3}, nil)
	count, _ := auxvar.CountOf(2, 1)
	a, err := NewRaggedContiguous(src, []int{2, 2}, count)
	if err != nil {
		t.Fatal(err)
	}
	out, err := a.Uncompress()
	if err != nil {
		t.Fatal(err)
	}
	checkValue(t, out, 10, 0, 0)
	checkValue(t, out, 11, 0, 1)
	checkValue(t, out, 20, 1, 0)
	checkMasked(t, out, 1, 1)
}

func TestShapeCopies(t *testing.T) {
	src := memSource(t, api.TypeFloat64, make([]float64, 3), []int{3}, nil)
	count, _ := auxvar.CountOf(2, 1)
	a, err := NewRaggedContiguous(src, []int{2, 2}, count)
	if err != nil {
		t.Fatal(err)
	}
	s := a.Shape()
	s[0] = 99
	if a.Shape()[0] != 2 {
		t.Error("Shape must return a copy")
	}
	if a.NDim() != 2 || a.Size() != 4 {
		t.Errorf("NDim=%d Size=%d", a.NDim(), a.Size())
	}
}
