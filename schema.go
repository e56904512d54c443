package record

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Field is one named, typed slot of a record schema.
type Field struct {
	Name string
	Type *Type
}

// Schema is an ordered list of fields describing one record kind.
// Field order drives prompting order and the key order of encoded mappings.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema declares a record kind. Field names must be unique and non-empty,
// and every field must have a type.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty record name", ErrInvalidSchema)
	}
	s := &Schema{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: %s field %d has no name", ErrInvalidSchema, name, i)
		}
		if f.Type == nil {
			return nil, fmt.Errorf("%w: %s.%s has no type", ErrInvalidSchema, name, f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %s.%s", ErrInvalidSchema, name, f.Name)
		}
		s.index[f.Name] = i
		s.fields[i] = f
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Intended for package-level schema declarations.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record kind's name.
func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// String returns the canonical text of the schema, e.g. Water{at:time,glass_count:float}.
// Nested schemas are expanded inline.
func (s *Schema) String() string {
	var b strings.Builder
	s.canonical(&b)
	return b.String()
}

func (s *Schema) canonical(b *strings.Builder) {
	b.WriteString(s.name)
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		canonicalType(b, f.Type)
	}
	b.WriteByte('}')
}

func canonicalType(b *strings.Builder, t *Type) {
	c := Classify(t)
	switch c.Category {
	case CategoryRecord:
		c.Schema.canonical(b)
	case CategoryOptional:
		b.WriteString("optional[")
		canonicalType(b, c.Elem)
		b.WriteByte(']')
	case CategorySequence:
		if c.Ordered {
			b.WriteString("list[")
		} else {
			b.WriteString("set[")
		}
		canonicalType(b, c.Elem)
		b.WriteByte(']')
	case CategoryPrimitive:
		b.WriteString(c.Primitive.String())
	default:
		b.WriteString("opaque:")
		b.WriteString(string(t.ID()))
	}
}

// Fingerprint returns a BLAKE2b-256 digest of the canonical schema text.
// Structurally identical schemas share a fingerprint.
func (s *Schema) Fingerprint() string {
	sum := blake2b.Sum256([]byte(s.String()))
	return hex.EncodeToString(sum[:])
}
