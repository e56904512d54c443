package record

import (
	"errors"
	"fmt"
)

// Request describes one value a Prompter should collect.
type Request struct {
	Record   string    // Record kind that declares the field
	Field    string    // Field name
	Path     string    // Field path from the root record, e.g. "reading.temps[1]"
	Type     *Type     // Type of the value asked for; the element type inside a sequence
	Validate Validator // Parses the user's text into a value of Type
	Default  any       // Suggested value, or nil
	Message  string    // Prompt text
}

// Prompter is the interactive front end used by Construct and Edit.
//
// Prompt must return a value accepted by req.Validate, re-asking the user on
// validation failures. Confirm asks a yes/no question about req. Any error
// from either method aborts construction.
type Prompter interface {
	Prompt(req Request) (any, error)
	Confirm(req Request, question string) (bool, error)
}

// ValueFunc produces a field value without prompting.
type ValueFunc func() (any, error)

// ConstructOptions adjusts interactive construction.
type ConstructOptions struct {
	// Values fixes field values; those fields are not prompted. Keys follow
	// the attribute override rules ("Record.field" or a bare root field).
	Values map[string]any

	// Defaults are passed to the prompter as suggestions. Keys follow the
	// attribute override rules.
	Defaults map[string]any

	// TypeValues produce values for every field of a type, at any depth,
	// instead of prompting (for example the current time for "time").
	TypeValues map[TypeID]ValueFunc
}

func (o *ConstructOptions) value(record, field string, root bool) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, k := range attrKeys(record, field, root) {
		if v, ok := o.Values[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func (o *ConstructOptions) fallback(record, field string, root bool) any {
	if o == nil {
		return nil
	}
	for _, k := range attrKeys(record, field, root) {
		if v, ok := o.Defaults[k]; ok {
			return v
		}
	}
	return nil
}

func (o *ConstructOptions) typeValue(id TypeID) (ValueFunc, bool) {
	if o == nil {
		return nil, false
	}
	fn, ok := o.TypeValues[id]
	return fn, ok && fn != nil
}

// Construct builds a record of schema s by prompting for each field,
// depth-first in schema order.
//
// Optional fields are confirmed before prompting, sequences collect elements
// until the user declines another, and nested records recurse. Validators for
// every field are resolved before the first prompt, so a type with no
// validator fails with ErrNoHandler without asking anything. A prompter
// error aborts with an error wrapping ErrAborted.
func Construct(s *Schema, p Prompter, ov *Overrides, opts *ConstructOptions) (*Record, error) {
	c := &constructor{r: &resolver{ov: ov}, p: p, opts: opts}
	if err := c.checkRecord(s, true); err != nil {
		return nil, err
	}
	return c.record(s, "", true, nil)
}

// Edit re-prompts one field of rec and returns a copy with the new value.
// The current value is offered as the default; for sequences each existing
// element is the default of the element at its position, and for nested
// records each current field value is the default of that field.
func Edit(rec *Record, field string, p Prompter, ov *Overrides) (*Record, error) {
	s := rec.Schema()
	f, ok := s.Field(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, s.Name(), field)
	}
	current, _ := rec.Get(field)

	c := &constructor{r: &resolver{ov: ov}, p: p}
	if err := c.checkField(s, f, true); err != nil {
		return nil, err
	}
	v, err := c.field(s, f, field, current, true)
	if err != nil {
		return nil, err
	}
	return rec.With(field, v)
}

type constructor struct {
	r    *resolver
	p    Prompter
	opts *ConstructOptions
}

func (c *constructor) checkRecord(s *Schema, root bool) error {
	for _, f := range s.fields {
		if err := c.checkField(s, f, root); err != nil {
			return err
		}
	}
	return nil
}

func (c *constructor) checkField(s *Schema, f Field, root bool) error {
	if _, ok := c.opts.value(s.name, f.Name, root); ok {
		return nil
	}
	if _, _, ok := c.r.ov.attrValidator(s.name, f.Name, root); ok {
		return nil
	}
	return c.checkType(s.name, f.Name, f.Type)
}

func (c *constructor) checkType(record, field string, t *Type) error {
	if _, ok := c.opts.typeValue(t.ID()); ok {
		return nil
	}
	if _, ok := c.r.ov.typeValidator(t.ID()); ok {
		return nil
	}
	cl := Classify(t)
	switch cl.Category {
	case CategoryPrimitive:
		return nil
	case CategoryOptional, CategorySequence:
		return c.checkType(record, field, cl.Elem)
	case CategoryRecord:
		return c.checkRecord(cl.Schema, false)
	default:
		return newHandlerError(KindValidate, record, field, t)
	}
}

// record prompts for every field of s. Values of current, when it is a
// record of the same shape, are the defaults for its fields.
func (c *constructor) record(s *Schema, parent string, root bool, current *Record) (*Record, error) {
	if current != nil && !sameSchema(current.schema, s) {
		current = nil
	}
	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		path := joinPath(parent, f.Name)
		if v, ok := c.opts.value(s.name, f.Name, root); ok {
			values[i] = v
			continue
		}
		def := c.opts.fallback(s.name, f.Name, root)
		if def == nil && current != nil {
			def = current.values[i]
		}
		v, err := c.field(s, f, path, def, root)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return fromSlice(s, values), nil
}

// field collects one field value, honouring an attribute validator.
func (c *constructor) field(s *Schema, f Field, path string, def any, root bool) (any, error) {
	v, _, ok := c.r.ov.attrValidator(s.name, f.Name, root)
	if !ok {
		return c.value(s.name, f.Name, path, f.Type, def)
	}

	req := c.request(s.name, f.Name, path, f.Type, v, def)
	if Classify(f.Type).Category == CategoryOptional {
		add, err := c.confirm(req, fmt.Sprintf("Add %s?", f.Name))
		if err != nil || !add {
			return nil, err
		}
	}
	return c.prompt(req)
}

func (c *constructor) value(record, field, path string, t *Type, def any) (any, error) {
	if fn, ok := c.opts.typeValue(t.ID()); ok {
		v, err := fn()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAborted, path, err)
		}
		return v, nil
	}
	if v, ok := c.r.ov.typeValidator(t.ID()); ok {
		return c.prompt(c.request(record, field, path, t, v, def))
	}

	cl := Classify(t)
	switch cl.Category {
	case CategoryPrimitive:
		return c.prompt(c.request(record, field, path, t, builtinValidator(cl.Primitive), def))

	case CategoryOptional:
		add, err := c.confirm(c.request(record, field, path, t, Validator{}, def), fmt.Sprintf("Add %s?", field))
		if err != nil || !add {
			return nil, err
		}
		return c.value(record, field, path, cl.Elem, def)

	case CategorySequence:
		req := c.request(record, field, path, t, Validator{}, def)
		defaults, _ := asList(def)
		var list []any
		set := SetValue{}
		for i := 0; ; i++ {
			more, err := c.confirm(req, fmt.Sprintf("Add an item to %s?", field))
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			var elemDef any
			if i < len(defaults) {
				elemDef = defaults[i]
			}
			v, err := c.value(record, field, indexPath(path, i), cl.Elem, elemDef)
			if err != nil {
				return nil, err
			}
			if cl.Ordered {
				list = append(list, v)
			} else {
				set = set.add(v)
			}
		}
		if !cl.Ordered {
			return set, nil
		}
		if list == nil {
			list = []any{}
		}
		return list, nil

	case CategoryRecord:
		current, _ := def.(*Record)
		return c.record(cl.Schema, path, false, current)

	default:
		return nil, newHandlerError(KindValidate, record, field, t)
	}
}

func (c *constructor) request(record, field, path string, t *Type, v Validator, def any) Request {
	msg := v.Prompt
	if msg == "" {
		msg = fmt.Sprintf("%s (%s)", path, t.ID())
	}
	return Request{
		Record:   record,
		Field:    field,
		Path:     path,
		Type:     t,
		Validate: v,
		Default:  def,
		Message:  msg,
	}
}

func (c *constructor) prompt(req Request) (any, error) {
	v, err := c.p.Prompt(req)
	if err != nil {
		return nil, aborted(req.Path, err)
	}
	return v, nil
}

func (c *constructor) confirm(req Request, question string) (bool, error) {
	ok, err := c.p.Confirm(req, question)
	if err != nil {
		return false, aborted(req.Path, err)
	}
	return ok, nil
}

func aborted(path string, err error) error {
	if errors.Is(err, ErrAborted) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrAborted, path, err)
}
