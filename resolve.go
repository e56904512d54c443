package record

import (
	"errors"
	"fmt"
	"reflect"
)

// Source reports which resolution step produced a handler.
type Source uint8

const (
	SourceAttribute Source = iota + 1 // attribute-level override
	SourceType                        // type-level override, declared or unwrapped
	SourceBuiltin                     // built-in primitive handler
	SourceNested                      // synthesized nested-record handler
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceAttribute:
		return "attribute"
	case SourceType:
		return "type"
	case SourceBuiltin:
		return "builtin"
	case SourceNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Handler is the outcome of resolving one field's handler.
// Only the function matching Kind is set.
type Handler struct {
	Kind        HandlerKind
	Source      Source
	Key         string // Override key or TypeID that matched
	Validate    Validator
	Serialize   Serializer
	Deserialize Deserializer
}

// Resolve determines which handler wins for a field of record, declared as t.
// The first match wins:
//
//  1. an attribute override for the field;
//  2. a type override for t, or for the type wrapped by Optional/List/Set;
//  3. the built-in handler for a primitive;
//  4. a synthesized handler that recurses into a nested record.
//
// Otherwise the error wraps ErrNoHandler. Bare attribute keys are honoured,
// so record is treated as a root record.
//
// The returned Serialize and Deserialize functions handle the whole declared
// type; Validate handles one value of the innermost type.
func Resolve(kind HandlerKind, record *Schema, field string, t *Type, ov *Overrides) (Handler, error) {
	h := Handler{Kind: kind}
	name := record.Name()

	switch kind {
	case KindValidate:
		if v, key, ok := ov.attrValidator(name, field, true); ok {
			h.Source, h.Key, h.Validate = SourceAttribute, key, v
			return h, nil
		}
	case KindSerialize:
		if fn, key, ok := ov.attrSerializer(name, field, true); ok {
			h.Source, h.Key, h.Serialize = SourceAttribute, key, fn
			return h, nil
		}
	case KindDeserialize:
		if fn, key, ok := ov.attrDeserializer(name, field, true); ok {
			h.Source, h.Key, h.Deserialize = SourceAttribute, key, fn
			return h, nil
		}
	default:
		return h, fmt.Errorf("unknown handler kind %d", kind)
	}

	src, key, err := resolveSource(kind, name, field, t, ov)
	if err != nil {
		return h, err
	}
	h.Source, h.Key = src, key

	r := &resolver{ov: ov}
	switch kind {
	case KindValidate:
		h.Validate, _ = r.valueValidator(t)
	case KindSerialize:
		enc := r.typeEncoder(t)
		h.Serialize = func(v any) (any, error) {
			return enc(v, site{record: name, path: field}, &collector{})
		}
	case KindDeserialize:
		dec, err := r.typeDecoder(name, field, t)
		if err != nil {
			return h, err
		}
		h.Deserialize = func(raw any) (any, error) {
			return dec(raw, site{record: name, path: field}, &collector{})
		}
	}
	return h, nil
}

// resolveSource walks wrapper layers looking for type overrides, then falls
// back to built-in or nested handling of the innermost type.
func resolveSource(kind HandlerKind, record, field string, t *Type, ov *Overrides) (Source, string, error) {
	for cur := t; ; {
		if hasTypeOverride(kind, cur.ID(), ov) {
			return SourceType, string(cur.ID()), nil
		}
		c := Classify(cur)
		switch c.Category {
		case CategoryOptional, CategorySequence:
			cur = c.Elem
		case CategoryPrimitive:
			return SourceBuiltin, string(cur.ID()), nil
		case CategoryRecord:
			return SourceNested, string(cur.ID()), nil
		default:
			return 0, "", newHandlerError(kind, record, field, cur)
		}
	}
}

func hasTypeOverride(kind HandlerKind, id TypeID, ov *Overrides) bool {
	switch kind {
	case KindValidate:
		_, ok := ov.typeValidator(id)
		return ok
	case KindSerialize:
		_, ok := ov.typeSerializer(id)
		return ok
	default:
		_, ok := ov.typeDeserializer(id)
		return ok
	}
}

// resolver composes handlers for one call. It holds no state beyond the
// caller's overrides.
type resolver struct {
	ov *Overrides
}

func wrapDeserializer(fn Deserializer) decodeFunc {
	return func(raw any, _ site, _ *collector) (any, error) {
		return fn(raw)
	}
}

func wrapSerializer(fn Serializer) encodeFunc {
	return func(v any, _ site, _ *collector) (any, error) {
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		tree, ok := normalizeTree(out)
		if !ok {
			return nil, fmt.Errorf("serializer returned %T, not a primitive value", out)
		}
		return tree, nil
	}
}

// fieldDecoder resolves the deserializer for one field.
func (r *resolver) fieldDecoder(s *Schema, f Field, root bool) (decodeFunc, error) {
	if fn, _, ok := r.ov.attrDeserializer(s.name, f.Name, root); ok {
		return wrapDeserializer(fn), nil
	}
	return r.typeDecoder(s.name, f.Name, f.Type)
}

// typeDecoder composes the deserializer for a declared type.
func (r *resolver) typeDecoder(record, field string, t *Type) (decodeFunc, error) {
	if fn, ok := r.ov.typeDeserializer(t.ID()); ok {
		return wrapDeserializer(fn), nil
	}

	c := Classify(t)
	switch c.Category {
	case CategoryPrimitive:
		return builtinDecoder(c.Primitive), nil

	case CategoryOptional:
		// An override for the wrapped type also sees explicit nulls.
		if fn, ok := r.ov.typeDeserializer(c.Elem.ID()); ok {
			return wrapDeserializer(fn), nil
		}
		inner, err := r.typeDecoder(record, field, c.Elem)
		if err != nil {
			return nil, err
		}
		return func(raw any, at site, col *collector) (any, error) {
			if raw == nil {
				return nil, nil
			}
			return inner(raw, at, col)
		}, nil

	case CategorySequence:
		inner, err := r.typeDecoder(record, field, c.Elem)
		if err != nil {
			return nil, err
		}
		ordered := c.Ordered
		return func(raw any, at site, col *collector) (any, error) {
			if raw == nil {
				return nil, mismatch("list", raw)
			}
			items, ok := asList(raw)
			if !ok {
				return nil, fmt.Errorf("expected list, found %s", describe(raw))
			}
			var list []any
			var set SetValue
			if ordered {
				list = make([]any, 0, len(items))
			} else {
				set = make(SetValue, 0, len(items))
			}
			for i, item := range items {
				v, err := inner(item, at.elem(i), col)
				if err != nil {
					return nil, elementErr(at.elem(i), err)
				}
				if ordered {
					list = append(list, v)
				} else {
					set = set.add(v)
				}
			}
			if ordered {
				return list, nil
			}
			return set, nil
		}, nil

	case CategoryRecord:
		schema := c.Schema
		if _, err := r.recordDecoders(schema, false); err != nil {
			return nil, err
		}
		return func(raw any, at site, col *collector) (any, error) {
			if raw == nil {
				return nil, mismatch("mapping", raw)
			}
			return r.decodeRecord(schema, raw, at.path, col, false)
		}, nil

	default:
		return nil, newHandlerError(KindDeserialize, record, field, t)
	}
}

// fieldEncoder resolves the serializer for one field.
func (r *resolver) fieldEncoder(s *Schema, f Field, root bool) encodeFunc {
	if fn, _, ok := r.ov.attrSerializer(s.name, f.Name, root); ok {
		return wrapSerializer(fn)
	}
	return r.typeEncoder(f.Type)
}

// typeEncoder composes the serializer for a declared type. Values no handler
// can represent produce an error, which the caller reports as Unserializable.
func (r *resolver) typeEncoder(t *Type) encodeFunc {
	if fn, ok := r.ov.typeSerializer(t.ID()); ok {
		return wrapSerializer(fn)
	}

	c := Classify(t)
	switch c.Category {
	case CategoryPrimitive:
		enc := builtinEncoder(c.Primitive)
		return func(v any, at site, col *collector) (any, error) {
			if v == nil {
				col.add(CodeMissingField, at.record, at.path, "no value for non-optional %s, writing null", t.ID())
				return nil, nil
			}
			return enc(v, at, col)
		}

	case CategoryOptional:
		if fn, ok := r.ov.typeSerializer(c.Elem.ID()); ok {
			return wrapSerializer(fn)
		}
		inner := r.typeEncoder(c.Elem)
		return func(v any, at site, col *collector) (any, error) {
			if v == nil {
				return nil, nil
			}
			return inner(v, at, col)
		}

	case CategorySequence:
		inner := r.typeEncoder(c.Elem)
		ordered := c.Ordered
		return func(v any, at site, col *collector) (any, error) {
			if v == nil {
				col.add(CodeMissingField, at.record, at.path, "no value for non-optional %s, writing empty list", t.ID())
				return []any{}, nil
			}
			items, err := sequenceItems(v, ordered, t, at, col)
			if err != nil {
				return nil, err
			}
			out := make([]any, 0, len(items))
			for i, item := range items {
				e, err := inner(item, at.elem(i), col)
				if err != nil {
					return nil, elementErr(at.elem(i), err)
				}
				out = append(out, e)
			}
			return out, nil
		}

	case CategoryRecord:
		schema := c.Schema
		return func(v any, at site, col *collector) (any, error) {
			if v == nil {
				col.add(CodeMissingField, at.record, at.path, "no value for non-optional %s, writing null", t.ID())
				return nil, nil
			}
			rec, ok := v.(*Record)
			if !ok || rec == nil {
				return nil, fmt.Errorf("%s field holds %T", t.ID(), v)
			}
			return r.encodeRecord(schema, rec, at.path, col, false)
		}

	default:
		return func(v any, at site, col *collector) (any, error) {
			if v == nil {
				col.add(CodeMissingField, at.record, at.path, "no value for non-optional %s, writing null", t.ID())
				return nil, nil
			}
			return nil, fmt.Errorf("no known way to serialize %s", t.ID())
		}
	}
}

// elementError carries the path of the sequence element that failed, so the
// field-level warning can point at it.
type elementError struct {
	path string
	err  error
}

func (e *elementError) Error() string { return e.err.Error() }

func (e *elementError) Unwrap() error { return e.err }

func elementErr(at site, err error) error {
	var ee *elementError
	if errors.As(err, &ee) {
		return err
	}
	return &elementError{path: at.path, err: err}
}

// failurePath returns the path a field failure is reported under.
func failurePath(fieldPath string, err error) string {
	var ee *elementError
	if errors.As(err, &ee) {
		return ee.path
	}
	return fieldPath
}

// sequenceItems extracts the elements of a sequence field value. Values whose
// Go form differs from what decoding produces are accepted with a warning.
func sequenceItems(v any, ordered bool, t *Type, at site, col *collector) ([]any, error) {
	switch items := v.(type) {
	case []any:
		if !ordered {
			col.add(CodeTypeMismatch, at.record, at.path, "%s field holds []any, expected record.SetValue", t.ID())
		}
		return items, nil
	case SetValue:
		if ordered {
			col.add(CodeTypeMismatch, at.record, at.path, "%s field holds record.SetValue, expected []any", t.ID())
		}
		return items, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%s field holds %T", t.ID(), v)
	}
	col.add(CodeTypeMismatch, at.record, at.path, "%s field holds %T, converted element-wise", t.ID(), v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// valueValidator resolves the validator for one value of the innermost type
// of t, consulting type overrides at each wrapper layer.
func (r *resolver) valueValidator(t *Type) (Validator, bool) {
	for cur := t; ; {
		if v, ok := r.ov.typeValidator(cur.ID()); ok {
			return v, true
		}
		c := Classify(cur)
		switch c.Category {
		case CategoryOptional, CategorySequence:
			cur = c.Elem
		case CategoryPrimitive:
			return builtinValidator(c.Primitive), true
		default:
			return Validator{}, false
		}
	}
}
