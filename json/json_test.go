package json

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/record"
)

func TestNew(t *testing.T) {
	f := New()
	if f == nil {
		t.Error("New() should return non-nil format")
	}
}

func TestContentType(t *testing.T) {
	f := New()
	if f.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", f.ContentType(), "application/json")
	}
}

func TestMarshalKeepsKeyOrderAndFloats(t *testing.T) {
	m := record.NewMapping(2)
	m.Set("at", int64(1598856786))
	m.Set("glass_count", 2.0)

	data, err := New(Compact()).Marshal([]any{m})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `[{"at":1598856786,"glass_count":2.0}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	m := record.NewMapping(1)
	m.Set("name", "tea")

	data, err := New(WithIndent("  ")).Marshal([]any{m})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := "[\n  {\n    \"name\": \"tea\"\n  }\n]"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}
}

func TestMarshalEmpty(t *testing.T) {
	data, err := New().Marshal([]any{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Marshal([]) = %q, want %q", data, "[]")
	}
}

func TestMarshalRejectsNaN(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := New().Marshal([]any{f}); err == nil {
			t.Errorf("Marshal(%v) should return error", f)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{0, "0.0"},
		{-3.5, "-3.5"},
		{0.1, "0.1"},
		{123456789, "123456789.0"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		got, err := formatFloat(tt.in)
		if err != nil {
			t.Fatalf("formatFloat(%v) error: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalNumbers(t *testing.T) {
	var tree any
	err := New().Unmarshal([]byte(`[{"a": 1, "b": 2.0, "c": 1e3, "d": [3, "x", null, true]}]`), &tree)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	list, ok := tree.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("Unmarshal() = %#v, want a one-element list", tree)
	}
	m, ok := list[0].(*record.Mapping)
	if !ok {
		t.Fatalf("element = %T, want *record.Mapping", list[0])
	}

	want := map[string]any{
		"a": int64(1),
		"b": 2.0,
		"c": 1000.0,
		"d": []any{int64(3), "x", nil, true},
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	for k, w := range want {
		got, _ := m.Get(k)
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestUnmarshalStruct(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	if err := New().Unmarshal([]byte(`{"name":"tea"}`), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if v.Name != "tea" {
		t.Errorf("Name = %q, want %q", v.Name, "tea")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v any
	if err := New().Unmarshal([]byte("invalid json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
	if err := New().Unmarshal([]byte("[] []"), &v); err == nil {
		t.Error("Unmarshal(trailing data) should return error")
	}
}
