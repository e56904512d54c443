package record

import (
	"fmt"
	"strings"
)

// Record is a value for each field of a schema. Records are immutable:
// the codec never modifies one after construction, and With returns a copy.
//
// Field values use the Go forms the decoder produces: int64, float64, bool,
// string, time.Time, []any, SetValue, *Record, values of custom types, or
// nil for an absent value.
type Record struct {
	schema *Schema
	values []any
}

// NewRecord builds a record of schema s. Fields missing from values are
// absent (nil). Names not declared by s are rejected.
func NewRecord(s *Schema, values map[string]any) (*Record, error) {
	r := &Record{schema: s, values: make([]any, len(s.fields))}
	for name, v := range values {
		i, ok := s.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.name, name)
		}
		r.values[i] = v
	}
	return r, nil
}

// MustRecord is like NewRecord but panics on error.
func MustRecord(s *Schema, values map[string]any) *Record {
	r, err := NewRecord(s, values)
	if err != nil {
		panic(err)
	}
	return r
}

// fromSlice takes ownership of values, which must be in schema order.
func fromSlice(s *Schema, values []any) *Record {
	return &Record{schema: s, values: values}
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the value of the named field. The bool is false when the
// schema declares no such field.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Values returns the field values keyed by name.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, f := range r.schema.fields {
		out[f.Name] = r.values[i]
	}
	return out
}

// With returns a copy of r with one field replaced.
func (r *Record) With(name string, v any) (*Record, error) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, r.schema.name, name)
	}
	values := make([]any, len(r.values))
	copy(values, r.values)
	values[i] = v
	return fromSlice(r.schema, values), nil
}

// Equal reports whether two records have the same record kind and equal field
// values. Temporal values compare as instants; sets compare without order.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.schema != other.schema && r.schema.String() != other.schema.String() {
		return false
	}
	for i := range r.values {
		if !valuesEqual(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// String renders the record as Name(field=value, ...).
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.schema.name)
	b.WriteByte('(')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.Name, r.values[i])
	}
	b.WriteByte(')')
	return b.String()
}
