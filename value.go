package record

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"time"
)

// Mapping is an ordered string-keyed mapping in a primitive value tree.
// The encoder always produces *Mapping so that formats can emit keys in
// schema field order.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping returns an empty mapping with room for n keys.
func NewMapping(n int) *Mapping {
	return &Mapping{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set assigns v to key, appending key if it is new.
func (m *Mapping) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value at key.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// MarshalJSON writes the mapping as a JSON object in key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SetValue is the decoded form of an unordered sequence: distinct values in
// first-seen order.
type SetValue []any

// NewSet builds a SetValue, dropping duplicates.
func NewSet(values ...any) SetValue {
	out := make(SetValue, 0, len(values))
	for _, v := range values {
		out = out.add(v)
	}
	return out
}

// Contains reports whether v is a member of the set.
func (s SetValue) Contains(v any) bool {
	for _, have := range s {
		if valuesEqual(have, v) {
			return true
		}
	}
	return false
}

func (s SetValue) add(v any) SetValue {
	if s.Contains(v) {
		return s
	}
	return append(s, v)
}

// valuesEqual compares decoded field values. Sets compare without regard to order.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case *Record:
		bv, ok := b.(*Record)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case SetValue:
		bv, ok := b.(SetValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for _, v := range av {
			if !bv.Contains(v) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// lookupMapping adapts the mapping shapes formats may produce.
func lookupMapping(tree any) (func(string) (any, bool), bool) {
	switch m := tree.(type) {
	case *Mapping:
		if m == nil {
			return nil, false
		}
		return m.Get, true
	case map[string]any:
		return func(k string) (any, bool) {
			v, ok := m[k]
			return v, ok
		}, true
	case map[any]any:
		return func(k string) (any, bool) {
			v, ok := m[k]
			return v, ok
		}, true
	default:
		return nil, false
	}
}

// asList returns the elements of a list-shaped tree.
func asList(tree any) ([]any, bool) {
	switch l := tree.(type) {
	case []any:
		return l, true
	case SetValue:
		return l, true
	default:
		return nil, false
	}
}

// asInt64 converts any Go integer kind.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	default:
		return 0, false
	}
}

func uintToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

// asFloat64 converts any Go floating-point kind.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Normalize rewrites a tree produced by a format decoder into canonical
// primitive form: integers as int64, floats as float64, and mappings as
// *Mapping. It reports false if v holds anything outside the primitive
// universe.
func Normalize(v any) (any, bool) {
	return normalizeTree(v)
}

// normalizeTree checks that v lies in the primitive universe and rewrites
// numeric kinds to int64/float64, sets to lists, and plain maps to *Mapping
// with sorted keys.
func normalizeTree(v any) (any, bool) {
	switch tv := v.(type) {
	case nil, bool, string, int64, float64, json.Number:
		return tv, true
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			n, ok := normalizeTree(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	case SetValue:
		return normalizeTree([]any(tv))
	case *Mapping:
		if tv == nil {
			return nil, true
		}
		out := NewMapping(tv.Len())
		for _, k := range tv.keys {
			n, ok := normalizeTree(tv.values[k])
			if !ok {
				return nil, false
			}
			out.Set(k, n)
		}
		return out, true
	case map[any]any:
		m := make(map[string]any, len(tv))
		for k, e := range tv {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			m[ks] = e
		}
		return normalizeTree(m)
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewMapping(len(keys))
		for _, k := range keys {
			n, ok := normalizeTree(tv[k])
			if !ok {
				return nil, false
			}
			out.Set(k, n)
		}
		return out, true
	}
	if n, ok := asInt64(v); ok {
		return n, true
	}
	if f, ok := asFloat64(v); ok {
		return f, true
	}
	return nil, false
}
