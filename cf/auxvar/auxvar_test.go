package auxvar

import (
	"errors"
	"testing"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
)

func TestCountOf(t *testing.T) {
	c, err := CountOf(3, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if c.Total() != 9 || c.Max() != 4 || c.Len() != 3 {
		t.Errorf("total %d max %d len %d", c.Total(), c.Max(), c.Len())
	}
	if c.Offset(0) != 0 || c.Offset(1) != 3 || c.Offset(2) != 5 {
		t.Errorf("offsets: %d %d %d", c.Offset(0), c.Offset(1), c.Offset(2))
	}
}

func TestCountNegative(t *testing.T) {
	_, err := CountOf(3, -1)
	if !errors.Is(err, api.ErrGeometry) {
		t.Errorf("want geometry error, got %v", err)
	}
}

func TestIndexRows(t *testing.T) {
	ix, err := IndexOf(0, 2, 0, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := ix.Rows(3)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{0, 2}, {3}, {1, 4}}
	for i, w := range want {
		if len(rows[i]) != len(w) {
			t.Fatalf("row %d: %v, want %v", i, rows[i], w)
		}
		for j := range w {
			if rows[i][j] != w[j] {
				t.Errorf("row %d: %v, want %v", i, rows[i], w)
			}
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	ix, err := IndexOf(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ix.Rows(3); !errors.Is(err, api.ErrGeometry) {
		t.Errorf("want geometry error, got %v", err)
	}
}

func TestTiePointIndexOrder(t *testing.T) {
	if _, err := TiePointIndexOf(0, 5, 5); !errors.Is(err, ErrTiePointOrder) {
		t.Errorf("want tie point order error, got %v", err)
	}
	if _, err := TiePointIndexOf(0, 5, 3); !errors.Is(err, ErrTiePointOrder) {
		t.Errorf("want tie point order error, got %v", err)
	}
	tp, err := TiePointIndexOf(0, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := tp.Validate(11); err != nil {
		t.Errorf("full coverage should validate: %v", err)
	}
	if err := tp.Validate(12); !errors.Is(err, api.ErrGeometry) {
		t.Error("gap at the end should be a geometry error")
	}
}

func TestParameterValueAt(t *testing.T) {
	// Parameter spans tie point axes (1, 0), permuted, axis 2 omitted.
	a, err := ndarray.FromSlice(api.TypeFloat64, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParameterOf(a, []int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	// tie point axis 0 -> parameter axis 1, tie point axis 1 ->
	// parameter axis 0.
	v, ok := p.ValueAt(map[int]int{0: 1, 1: 2, 2: 9})
	if !ok || v != 6 {
		t.Errorf("got %v ok=%v, want 6", v, ok)
	}
}

func TestParameterDimsMismatch(t *testing.T) {
	a, err := ndarray.FromSlice(api.TypeFloat64, []float64{1, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParameterOf(a, []int{0, 1}); !errors.Is(err, api.ErrConfig) {
		t.Errorf("want configuration error, got %v", err)
	}
}

func TestNodeCoordinates(t *testing.T) {
	a, err := ndarray.FromSlice(api.TypeFloat64, []float64{10, 20, 30}, 3)
	if err != nil {
		t.Fatal(err)
	}
	a.SetMasked(1)
	nc, err := NodeCoordinatesOf(a)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := nc.At(0); !ok || v != 10.0 {
		t.Errorf("got %v ok=%v", v, ok)
	}
	if _, ok := nc.At(1); ok {
		t.Error("masked node should report not ok")
	}
}
