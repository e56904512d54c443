package msgpack

import (
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
	if f.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", f.ContentType(), "application/msgpack")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	m := record.NewMapping(4)
	m.Set("at", int64(1598856786))
	m.Set("glass_count", 2.0)
	m.Set("tags", []any{"a", int64(3)})
	m.Set("note", nil)

	f := New()
	data, err := f.Marshal([]any{m})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var tree any
	if err := f.Unmarshal(data, &tree); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	items, ok := tree.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("Unmarshal() = %#v, want one-element list", tree)
	}
	got, ok := items[0].(*record.Mapping)
	if !ok {
		t.Fatalf("element = %T, want *record.Mapping", items[0])
	}

	// Normalization sorts keys of decoded maps.
	if diff := cmp.Diff([]string{"at", "glass_count", "note", "tags"}, got.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	for _, k := range m.Keys() {
		want, _ := m.Get(k)
		have, _ := got.Get(k)
		if diff := cmp.Diff(want, have); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestMarshalPreservesKeyOrder(t *testing.T) {
	m := record.NewMapping(2)
	m.Set("b", int64(1))
	m.Set("a", int64(2))

	data, err := New().Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// fixmap(2), fixstr "b", 1, fixstr "a", 2
	want := []byte{0x82, 0xa1, 'b', 0x01, 0xa1, 'a', 0x02}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalCompactInts(t *testing.T) {
	m := record.NewMapping(1)
	m.Set("x", int64(1))

	data, err := New().Marshal([]any{m})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	// fixarray(1), fixmap(1), fixstr "x", positive fixint 1
	want := []byte{0x91, 0x81, 0xa1, 'x', 0x01}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}

	tests := []int64{-1, 200, -40000, 1 << 40}
	for _, n := range tests {
		data, err := New().Marshal([]any{n})
		if err != nil {
			t.Fatalf("Marshal(%d) error: %v", n, err)
		}
		var got any
		if err := New().Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%d) error: %v", n, err)
		}
		if diff := cmp.Diff([]any{n}, got); diff != "" {
			t.Errorf("round trip %d mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestMarshalEmpty(t *testing.T) {
	data, err := New().Marshal([]any{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if len(data) != 1 || data[0] != 0x90 {
		t.Errorf("Marshal([]) = %x, want 90", data)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v any
	if err := New().Unmarshal([]byte{0xc1}, &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
