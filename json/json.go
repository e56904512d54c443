// Package json provides a JSON format for record containers.
//
// Output keeps mapping keys in record field order and writes floats with a
// fractional part (2.0, not 2), so a float field reads back as a float.
// Input numbers decode to int64 when written without a fraction or exponent
// and to float64 otherwise.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/record"
)

// DefaultIndent is the indentation used unless an option changes it.
const DefaultIndent = "    "

// Option configures the JSON format.
type Option func(*jsonFormat)

// WithIndent sets the indentation string for each nesting level.
func WithIndent(indent string) Option {
	return func(f *jsonFormat) {
		f.indent = indent
	}
}

// Compact writes the container on a single line.
func Compact() Option {
	return WithIndent("")
}

// jsonFormat implements record.Format for JSON.
type jsonFormat struct {
	indent string
}

// New returns a JSON format.
func New(opts ...Option) record.Format {
	f := &jsonFormat{indent: DefaultIndent}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ContentType returns the MIME type for JSON.
func (f *jsonFormat) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (f *jsonFormat) Marshal(v any) ([]byte, error) {
	tree, err := prepare(v)
	if err != nil {
		return nil, err
	}
	if f.indent == "" {
		return json.Marshal(tree)
	}
	return json.MarshalIndent(tree, "", f.indent)
}

// Unmarshal decodes JSON data into v. When v is *any, numbers become int64
// or float64 and objects become *record.Mapping.
func (f *jsonFormat) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after top-level value")
	}
	if p, ok := v.(*any); ok {
		tree, err := numbers(*p)
		if err != nil {
			return err
		}
		normal, ok := record.Normalize(tree)
		if !ok {
			return fmt.Errorf("unsupported JSON value of type %T", tree)
		}
		*p = normal
	}
	return nil
}

// prepare rewrites floats as json.Number literals that keep a fraction.
func prepare(v any) (any, error) {
	switch tv := v.(type) {
	case float64:
		return formatFloat(tv)
	case float32:
		return formatFloat(float64(tv))
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			p, err := prepare(e)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case *record.Mapping:
		if tv == nil {
			return nil, nil
		}
		out := record.NewMapping(tv.Len())
		for _, k := range tv.Keys() {
			e, _ := tv.Get(k)
			p, err := prepare(e)
			if err != nil {
				return nil, err
			}
			out.Set(k, p)
		}
		return out, nil
	default:
		return v, nil
	}
}

func formatFloat(f float64) (json.Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("json: unsupported value %v", f)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'f' && !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.Number(s), nil
}

// numbers replaces json.Number values with int64 or float64.
func numbers(v any) (any, error) {
	switch tv := v.(type) {
	case json.Number:
		s := tv.String()
		if !strings.ContainsAny(s, ".eE") {
			if n, err := tv.Int64(); err == nil {
				return n, nil
			}
		}
		return tv.Float64()
	case []any:
		for i, e := range tv {
			n, err := numbers(e)
			if err != nil {
				return nil, err
			}
			tv[i] = n
		}
		return tv, nil
	case map[string]any:
		for k, e := range tv {
			n, err := numbers(e)
			if err != nil {
				return nil, err
			}
			tv[k] = n
		}
		return tv, nil
	default:
		return v, nil
	}
}
