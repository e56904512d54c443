package record

import "fmt"

// Encode produces the primitive value tree for rec, with keys in schema
// order.
//
// A field no handler can represent is written as null and reported as an
// Unserializable warning; encoding never stops at a field. The returned error
// is non-nil only when rec is nil or was built for a different schema.
func Encode(s *Schema, rec *Record, ov *Overrides) (*Mapping, Warnings, error) {
	r := &resolver{ov: ov}
	col := &collector{}
	m, err := r.encodeRecord(s, rec, "", col, true)
	if err != nil {
		return nil, col.warnings, err
	}
	return m, col.warnings, nil
}

func (r *resolver) encodeRecord(s *Schema, rec *Record, parent string, col *collector, root bool) (*Mapping, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil %s record", ErrInvalidSchema, s.name)
	}
	if !sameSchema(rec.schema, s) {
		return nil, fmt.Errorf("%w: record of kind %s encoded as %s", ErrInvalidSchema, rec.schema.name, s.name)
	}

	m := NewMapping(len(s.fields))
	for i, f := range s.fields {
		path := joinPath(parent, f.Name)
		enc := r.fieldEncoder(s, f, root)
		out, err := enc(rec.values[i], site{record: s.name, path: path}, col)
		if err != nil {
			col.add(CodeUnserializable, s.name, failurePath(path, err), "%v, writing null", err)
			out = nil
		}
		m.Set(f.Name, out)
	}
	return m, nil
}

// sameSchema reports whether a and b describe the same record shape.
func sameSchema(a, b *Schema) bool {
	return a == b || (a != nil && b != nil && a.String() == b.String())
}
