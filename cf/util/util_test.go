package util

import (
	"log"
	"reflect"
	"strings"
	"testing"
)

func TestAttrMapOrder(t *testing.T) {
	am := NewAttrMap()
	am.Add("scale_factor", float32(0.5))
	am.Add("add_offset", float32(10))
	am.Add("units", "K")
	keys := am.Keys()
	if !reflect.DeepEqual(keys, []string{"scale_factor", "add_offset", "units"}) {
		t.Error("wrong key order", keys)
		return
	}
	v, has := am.Get("add_offset")
	if !has || v.(float32) != 10 {
		t.Error("wrong value", v)
	}
	if _, has := am.Get("missing_value"); has {
		t.Error("found an attribute that was never added")
	}
}

func TestAttrMapOverwrite(t *testing.T) {
	am := AttrsOf("a", 1, "b", 2)
	am.Add("a", 3)
	if len(am.Keys()) != 2 {
		t.Error("overwrite grew the key list", am.Keys())
		return
	}
	v, _ := am.Get("a")
	if v.(int) != 3 {
		t.Error("overwrite did not take", v)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	// must not panic
	l.Info("dropped")
	l.Warnf("dropped %d", 1)
	l.Error("dropped")
}

func TestLoggerLevels(t *testing.T) {
	var b strings.Builder
	l := NewLogger()
	l.logger = log.New(&b, "", 0)

	l.Info("hidden at default level")
	if b.Len() != 0 {
		t.Error("info printed at default level:", b.String())
		return
	}
	l.Warn("shown")
	if !strings.Contains(b.String(), "WARN shown") {
		t.Error("warning missing:", b.String())
	}

	b.Reset()
	l.SetLogLevel(LevelInfo)
	l.Infof("n=%d", 7)
	if !strings.Contains(b.String(), "INFO n=7") {
		t.Error("info missing after raising the level:", b.String())
	}
}
