package main

import (
	"path/filepath"
	"testing"

	netapi "github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	netutil "github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/batchatco/go-cf-arrays/cf/compressed"
	"github.com/batchatco/go-cf-arrays/cf/source"
)

func varAttrs(t *testing.T, keys []string, vals map[string]any) netapi.AttributeMap {
	t.Helper()
	am, err := netutil.NewOrderedMap(keys, vals)
	if err != nil {
		t.Fatal(err)
	}
	return am
}

func writeTwoSetFile(t *testing.T, indexDim string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "sets.nc")
	cw, err := cdf.OpenWriter(fname)
	if err != nil {
		t.Fatal(err)
	}
	err = cw.AddVar("temp", netapi.Variable{
		Values:     []float64{1, 2, 3, 4},
		Dimensions: []string{"obs"},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = cw.AddVar("stationIndex", netapi.Variable{
		Values:     []int32{0, 0, 1, 1},
		Dimensions: []string{indexDim},
		Attributes: varAttrs(t, []string{"instance_dimension"},
			map[string]any{"instance_dimension": "station"}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		t.Fatal(err)
	}
	return fname
}

// An index variable over a different dimension belongs to some other
// ragged set and must not attach to this variable.
func TestDetectIgnoresForeignIndexVariable(t *testing.T) {
	g, err := source.Open(writeTwoSetFile(t, "obs2"))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	_, found, err := detectCompressed(g, "temp", nil)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("detected a ragged encoding from an unrelated index variable")
	}
}

func TestDetectIndexed(t *testing.T) {
	g, err := source.Open(writeTwoSetFile(t, "obs"))
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	ca, found, err := detectCompressed(g, "temp", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected an indexed ragged encoding")
	}
	if ca.CompressionType() != compressed.RaggedIndexed {
		t.Errorf("got %v, want %v", ca.CompressionType(), compressed.RaggedIndexed)
	}
	shape := ca.Shape()
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 2 {
		t.Errorf("shape %v, want [2 2]", shape)
	}
}
