package record

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/zoobzio/sentinel"
)

// DeriveTag is the struct tag read by Derive.
const DeriveTag = "record"

func init() {
	// Register the record tag with sentinel
	sentinel.Tag(DeriveTag)
}

var (
	derived   = make(map[reflect.Type]*Schema)
	derivedMu sync.RWMutex
)

// Derive builds a Schema from the exported fields of struct type T.
//
// Field types map as follows: integer kinds to Int, float kinds to Float,
// bool to Bool, string to Str, time.Time to Temporal, pointers to Optional,
// slices and arrays to List, map[K]struct{} to Set, and structs to Nested.
// Anything else becomes Opaque with the Go type name as its id.
//
// The tag `record:"name,type=expr"` renames a field and replaces its type
// with a ParseType expression; `record:"-"` skips it. Untagged fields use the
// snake_case form of the Go name. Schemas are cached per type.
func Derive[T any]() (*Schema, error) {
	rt := reflect.TypeFor[T]()

	derivedMu.RLock()
	if s, ok := derived[rt]; ok {
		derivedMu.RUnlock()
		return s, nil
	}
	derivedMu.RUnlock()

	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, rt)
	}

	d := &deriver{visiting: make(map[reflect.Type]bool), schemas: make(map[string]*Schema)}
	s, err := d.schema(scanFields(sentinel.Scan[T]()), rt)
	if err != nil {
		return nil, err
	}

	derivedMu.Lock()
	defer derivedMu.Unlock()
	if cached, ok := derived[rt]; ok {
		return cached, nil
	}
	derived[rt] = s
	return s, nil
}

// structField is the part of a struct field Derive needs.
type structField struct {
	name string
	rt   reflect.Type
	tag  string
	set  bool // tag present
}

func scanFields(meta sentinel.Metadata) []structField {
	fields := make([]structField, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		tag, ok := f.Tags[DeriveTag]
		fields = append(fields, structField{name: f.Name, rt: f.ReflectType, tag: tag, set: ok})
	}
	return fields
}

// reflectFields scans a nested struct type sentinel has not seen.
func reflectFields(rt reflect.Type) []structField {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return scanFields(meta)
	}
	fields := make([]structField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup(DeriveTag)
		fields = append(fields, structField{name: sf.Name, rt: sf.Type, tag: tag, set: ok})
	}
	return fields
}

type deriver struct {
	visiting map[reflect.Type]bool
	schemas  map[string]*Schema // Nested schemas by name, for type expressions
}

func (d *deriver) schema(fields []structField, rt reflect.Type) (*Schema, error) {
	if d.visiting[rt] {
		return nil, fmt.Errorf("%w: %s refers to itself", ErrInvalidSchema, rt)
	}
	d.visiting[rt] = true
	defer delete(d.visiting, rt)

	out := make([]Field, 0, len(fields))
	for _, sf := range fields {
		name, expr := parseDeriveTag(sf)
		if name == "-" {
			continue
		}

		var t *Type
		var err error
		if expr != "" {
			t, err = ParseType(expr, d.schemas)
		} else {
			t, err = d.fieldType(sf.rt)
		}
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", rt.Name(), sf.name, err)
		}
		out = append(out, Field{Name: name, Type: t})
	}

	s, err := NewSchema(rt.Name(), out...)
	if err != nil {
		return nil, err
	}
	d.schemas[s.Name()] = s
	return s, nil
}

var timeType = reflect.TypeFor[time.Time]()

func (d *deriver) fieldType(rt reflect.Type) (*Type, error) {
	if rt == timeType {
		return Temporal(), nil
	}
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.Bool:
		return Bool(), nil
	case reflect.String:
		return Str(), nil
	case reflect.Ptr:
		elem, err := d.fieldType(rt.Elem())
		if err != nil {
			return nil, err
		}
		return Optional(elem), nil
	case reflect.Slice, reflect.Array:
		elem, err := d.fieldType(rt.Elem())
		if err != nil {
			return nil, err
		}
		return List(elem), nil
	case reflect.Map:
		if rt.Elem().Kind() == reflect.Struct && rt.Elem().NumField() == 0 {
			key, err := d.fieldType(rt.Key())
			if err != nil {
				return nil, err
			}
			return Set(key), nil
		}
	case reflect.Struct:
		s, err := d.schema(reflectFields(rt), rt)
		if err != nil {
			return nil, err
		}
		return Nested(s), nil
	}
	return Opaque(rt.String()), nil
}

// parseDeriveTag splits `name,type=expr`.
func parseDeriveTag(sf structField) (name, expr string) {
	name = snakeCase(sf.name)
	if !sf.set {
		return name, ""
	}
	parts := strings.Split(sf.tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if v, ok := strings.CutPrefix(strings.TrimSpace(opt), "type="); ok {
			expr = v
		}
	}
	return name, expr
}

// snakeCase converts a Go identifier such as GlassCount or HTTPCode to
// glass_count or http_code.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
