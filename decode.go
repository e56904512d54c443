package record

import (
	"errors"
	"fmt"
)

// Decode reconstructs a record of schema s from a primitive value tree.
//
// Decoding degrades per field: a missing key, a value of the wrong kind, or a
// failing handler is reported as a Warning and the field takes its absent
// default (nil, or an empty list or set for non-optional sequences). The
// returned error is non-nil only when tree is not a mapping
// (ErrMalformedContainer) or a field's type has no handler (ErrNoHandler).
func Decode(s *Schema, tree any, ov *Overrides) (*Record, Warnings, error) {
	r := &resolver{ov: ov}
	col := &collector{}
	rec, err := r.decodeRecord(s, tree, "", col, true)
	if err != nil {
		return nil, col.warnings, err
	}
	return rec, col.warnings, nil
}

// AbsentDefault returns the value a field of type t takes when no usable
// value was decoded.
func AbsentDefault(t *Type) any {
	c := Classify(t)
	if c.Category != CategorySequence {
		return nil
	}
	if c.Ordered {
		return []any{}
	}
	return SetValue{}
}

// recordDecoders resolves a deserializer for every field of s up front, so a
// type with no handler aborts the record even when its key is absent.
func (r *resolver) recordDecoders(s *Schema, root bool) ([]decodeFunc, error) {
	decoders := make([]decodeFunc, len(s.fields))
	for i, f := range s.fields {
		dec, err := r.fieldDecoder(s, f, root)
		if err != nil {
			return nil, err
		}
		decoders[i] = dec
	}
	return decoders, nil
}

func (r *resolver) decodeRecord(s *Schema, raw any, parent string, col *collector, root bool) (*Record, error) {
	decoders, err := r.recordDecoders(s, root)
	if err != nil {
		return nil, err
	}

	lookup, ok := lookupMapping(raw)
	if !ok {
		if root {
			return nil, fmt.Errorf("%w: %s expects a mapping, found %s", ErrMalformedContainer, s.name, describe(raw))
		}
		return nil, fmt.Errorf("%s expects a mapping, found %s", s.name, describe(raw))
	}

	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		path := joinPath(parent, f.Name)
		v, present := lookup(f.Name)
		if !present {
			col.add(CodeMissingField, s.name, path, "no value for %s, using default", f.Type.ID())
			values[i] = AbsentDefault(f.Type)
			continue
		}

		out, err := decoders[i](v, site{record: s.name, path: path}, col)
		if err != nil {
			if errors.Is(err, ErrNoHandler) {
				return nil, err
			}
			code := CodeFieldDecodeError
			if errors.Is(err, ErrTypeMismatch) {
				code = CodeTypeMismatch
			}
			col.add(code, s.name, failurePath(path, err), "%v", err)
			values[i] = AbsentDefault(f.Type)
			continue
		}
		values[i] = out
	}
	return fromSlice(s, values), nil
}
