package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HandlerKind selects which handler family is being resolved.
type HandlerKind uint8

const (
	KindValidate HandlerKind = iota + 1
	KindSerialize
	KindDeserialize
)

// String returns the handler kind name.
func (k HandlerKind) String() string {
	switch k {
	case KindValidate:
		return "validate"
	case KindSerialize:
		return "serialize"
	case KindDeserialize:
		return "deserialize"
	default:
		return "unknown"
	}
}

// Serializer converts a field value to a primitive value tree.
type Serializer func(v any) (any, error)

// Deserializer converts a primitive value tree to a field value.
// Returning an error wrapping ErrTypeMismatch reports a TypeMismatch warning;
// any other error reports a FieldDecodeError. Either way the field takes its
// absent default.
type Deserializer func(raw any) (any, error)

// Validator turns raw user input into a field value for interactive
// construction. Parse errors are validation failures shown to the user.
type Validator struct {
	Parse  func(input string) (any, error)
	Prompt string // Optional prompt message; the front end picks one when empty
}

// site locates the value being processed, for warnings.
type site struct {
	record string
	path   string
}

func (s site) elem(i int) site {
	return site{record: s.record, path: indexPath(s.path, i)}
}

type decodeFunc func(raw any, at site, c *collector) (any, error)

type encodeFunc func(v any, at site, c *collector) (any, error)

// mismatch builds an error wrapping ErrTypeMismatch.
func mismatch(want string, raw any) error {
	return fmt.Errorf("%w: expected %s, found %s", ErrTypeMismatch, want, describe(raw))
}

// describe names the primitive kind of a raw value.
func describe(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return "int"
		}
		return "float"
	case []any, SetValue:
		return "list"
	case *Mapping, map[string]any, map[any]any:
		return "mapping"
	case time.Time:
		return "timestamp"
	}
	if _, ok := asInt64(raw); ok {
		return "int"
	}
	if _, ok := asFloat64(raw); ok {
		return "float"
	}
	return fmt.Sprintf("%T", raw)
}

// builtinDecoder returns the deserializer for a primitive kind.
func builtinDecoder(p Primitive) decodeFunc {
	switch p {
	case PrimitiveInt:
		return decodeInt
	case PrimitiveFloat:
		return decodeFloat
	case PrimitiveBool:
		return decodeBool
	case PrimitiveStr:
		return decodeStr
	case PrimitiveTemporal:
		return decodeTemporal
	default:
		return nil
	}
}

func decodeInt(raw any, at site, c *collector) (any, error) {
	if n, ok := asInt64(raw); ok {
		return n, nil
	}
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			c.add(CodeTypeMismatch, at.record, at.path, "coerced string %q to int", v)
			return n, nil
		}
	}
	return nil, mismatch("int", raw)
}

func decodeFloat(raw any, at site, c *collector) (any, error) {
	if f, ok := asFloat64(raw); ok {
		return f, nil
	}
	// Integers widen to floats without a warning.
	if n, ok := asInt64(raw); ok {
		return float64(n), nil
	}
	switch v := raw.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.add(CodeTypeMismatch, at.record, at.path, "coerced string %q to float", v)
			return f, nil
		}
	}
	return nil, mismatch("float", raw)
}

func decodeBool(raw any, _ site, _ *collector) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	return nil, mismatch("bool", raw)
}

func decodeStr(raw any, at site, c *collector) (any, error) {
	var coerced string
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		coerced = v.String()
	default:
		if n, ok := asInt64(raw); ok {
			coerced = strconv.FormatInt(n, 10)
		} else if f, ok := asFloat64(raw); ok {
			coerced = strconv.FormatFloat(f, 'f', -1, 64)
		} else {
			return nil, mismatch("str", raw)
		}
	}
	c.add(CodeTypeMismatch, at.record, at.path, "coerced %s %s to str", describe(raw), coerced)
	return coerced, nil
}

func decodeTemporal(raw any, at site, c *collector) (any, error) {
	if n, ok := asInt64(raw); ok {
		return time.Unix(n, 0).UTC(), nil
	}
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Unix(n, 0).UTC(), nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			c.add(CodeTypeMismatch, at.record, at.path, "coerced string %q to epoch seconds", v)
			return time.Unix(n, 0).UTC(), nil
		}
	}
	return nil, mismatch("epoch seconds", raw)
}

// builtinEncoder returns the serializer for a primitive kind.
func builtinEncoder(p Primitive) encodeFunc {
	switch p {
	case PrimitiveInt:
		return encodeInt
	case PrimitiveFloat:
		return encodeFloat
	case PrimitiveBool:
		return encodeBool
	case PrimitiveStr:
		return encodeStr
	case PrimitiveTemporal:
		return encodeTemporal
	default:
		return nil
	}
}

func encodeInt(v any, _ site, _ *collector) (any, error) {
	if n, ok := asInt64(v); ok {
		return n, nil
	}
	return nil, fmt.Errorf("int field holds %T", v)
}

func encodeFloat(v any, at site, c *collector) (any, error) {
	if f, ok := asFloat64(v); ok {
		return f, nil
	}
	if n, ok := asInt64(v); ok {
		c.add(CodeTypeMismatch, at.record, at.path, "float field holds %T, written as float", v)
		return float64(n), nil
	}
	return nil, fmt.Errorf("float field holds %T", v)
}

func encodeBool(v any, _ site, _ *collector) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, fmt.Errorf("bool field holds %T", v)
}

func encodeStr(v any, _ site, _ *collector) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("str field holds %T", v)
}

func encodeTemporal(v any, _ site, _ *collector) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t.Unix(), nil
	case *time.Time:
		if t != nil {
			return t.Unix(), nil
		}
	}
	return nil, fmt.Errorf("time field holds %T", v)
}

// builtinValidator returns the text parser for a primitive kind.
func builtinValidator(p Primitive) Validator {
	switch p {
	case PrimitiveInt:
		return Validator{Parse: func(s string) (any, error) {
			return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		}}
	case PrimitiveFloat:
		return Validator{Parse: func(s string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		}}
	case PrimitiveBool:
		return Validator{Parse: parseBool}
	case PrimitiveStr:
		return Validator{Parse: func(s string) (any, error) { return s, nil }}
	case PrimitiveTemporal:
		return Validator{Parse: parseTemporal}
	default:
		return Validator{}
	}
}

var errInvalidBool = errors.New("expected true/false or yes/no")

func parseBool(s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return nil, errInvalidBool
	}
}

var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTemporal(s string) (any, error) {
	s = strings.TrimSpace(s)
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), nil
	}
	return nil, fmt.Errorf("cannot parse %q as a date/time (try 2006-01-02 15:04 or RFC 3339)", s)
}
