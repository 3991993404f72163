package ndarray

import (
	"testing"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

func TestFromSlice(t *testing.T) {
	a, err := FromSlice(api.TypeFloat64, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Size() != 6 || a.NDim() != 2 {
		t.Errorf("got size %d ndim %d", a.Size(), a.NDim())
	}
	if a.AnyMasked() {
		t.Error("fresh array should be unmasked")
	}

	_, err = FromSlice(api.TypeFloat64, []float64{1, 2, 3}, 2, 3)
	if err == nil {
		t.Error("length mismatch should fail")
	}
	_, err = FromSlice(api.TypeFloat64, []int32{1, 2, 3}, 3)
	if err == nil {
		t.Error("type mismatch should fail")
	}
}

func TestRavelUnravel(t *testing.T) {
	shape := []int{2, 3, 4}
	strides := Strides(shape)
	for flat := 0; flat < 24; flat++ {
		idx := Unravel(flat, shape)
		if got := Ravel(idx, strides); got != flat {
			t.Errorf("flat %d -> %v -> %d", flat, idx, got)
		}
	}
}

func TestMaskedAll(t *testing.T) {
	a := NewMaskedAll(api.TypeInt32, 2, 2)
	for i := 0; i < 4; i++ {
		if !a.Masked(i) {
			t.Errorf("element %d should be masked", i)
		}
	}
	if err := a.SetValueAt(1, int32(7)); err != nil {
		t.Fatal(err)
	}
	if a.Masked(1) {
		t.Error("SetValueAt should unmask")
	}
	if v := a.ValueAt(1); v != int32(7) {
		t.Errorf("got %v", v)
	}
}

func TestSetRegion(t *testing.T) {
	dst := NewMaskedAll(api.TypeFloat64, 3, 4)
	src, err := FromSlice(api.TypeFloat64, []float64{1, 2, 3, 4}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	src.SetMasked(3)

	region := api.Region{{Begin: 1, End: 3}, {Begin: 1, End: 3}}
	if err := dst.SetRegion(region, src); err != nil {
		t.Fatal(err)
	}

	// (1,1)=1 (1,2)=2 (2,1)=3 (2,2)=masked
	strides := Strides(dst.Shape())
	if v := dst.ValueAt(Ravel([]int{1, 1}, strides)); v != 1.0 {
		t.Errorf("got %v", v)
	}
	if v := dst.ValueAt(Ravel([]int{2, 1}, strides)); v != 3.0 {
		t.Errorf("got %v", v)
	}
	if !dst.Masked(Ravel([]int{2, 2}, strides)) {
		t.Error("masked source element should mask destination")
	}
	if !dst.Masked(0) {
		t.Error("untouched element should stay masked")
	}
}

func TestSubspaceOrthogonal(t *testing.T) {
	// 4x3x4, value = 100*i + 10*j + k
	data := make([]float64, 48)
	for i := range data {
		idx := Unravel(i, []int{4, 3, 4})
		data[i] = float64(100*idx[0] + 10*idx[1] + idx[2])
	}
	a, err := FromSlice(api.TypeFloat64, data, 4, 3, 4)
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.Subspace(api.Pick(1, 3), api.All(), api.Pick(0, 2))
	if err != nil {
		t.Fatal(err)
	}
	wantShape := []int{2, 3, 2}
	if !sameInts(got.Shape(), wantShape) {
		t.Fatalf("shape %v, want %v", got.Shape(), wantShape)
	}
	// Element (i,j,k) of the result must equal independent per-axis
	// selection, not paired selection.
	rows := []int{1, 3}
	cols := []int{0, 2}
	strides := Strides(wantShape)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 2; k++ {
				want := float64(100*rows[i] + 10*j + cols[k])
				v := got.ValueAt(Ravel([]int{i, j, k}, strides))
				if v != want {
					t.Errorf("(%d,%d,%d) = %v, want %v", i, j, k, v, want)
				}
			}
		}
	}
}

func TestSubspaceAtKeepsRank(t *testing.T) {
	a, err := FromSlice(api.TypeInt32, []int32{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Subspace(api.At(1), api.All())
	if err != nil {
		t.Fatal(err)
	}
	if !sameInts(got.Shape(), []int{1, 3}) {
		t.Errorf("shape %v, want [1 3]", got.Shape())
	}
	if v := got.ValueAt(0); v != int32(4) {
		t.Errorf("got %v", v)
	}
}

func TestSubspaceBadIndex(t *testing.T) {
	a := New(api.TypeFloat64, 2, 2)
	if _, err := a.Subspace(api.At(5), api.All()); err == nil {
		t.Error("out of range index should fail")
	}
	if _, err := a.Subspace(api.All()); err == nil {
		t.Error("wrong index count should fail")
	}
}

func TestAsFloat64(t *testing.T) {
	a, err := FromSlice(api.TypeInt16, []int16{1, -2, 3}, 3)
	if err != nil {
		t.Fatal(err)
	}
	a.SetMasked(2)
	f, err := a.AsFloat64()
	if err != nil {
		t.Fatal(err)
	}
	if v := f.ValueAt(1); v != -2.0 {
		t.Errorf("got %v", v)
	}
	if !f.Masked(2) {
		t.Error("mask should carry over")
	}
}

func TestFormatMasked(t *testing.T) {
	a, err := FromSlice(api.TypeInt32, []int32{1, 2, 3, 4}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	a.SetMasked(3)
	got := a.String()
	want := "int[2 2] [[1 2] [3 --]]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
