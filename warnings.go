package record

import (
	"fmt"
	"strings"
)

// Code classifies a recoverable problem.
type Code string

const (
	// CodeMissingField: the mapping lacked the field's key, or a non-optional
	// field held no value on encode. The field takes its absent default.
	CodeMissingField Code = "missing_field"

	// CodeTypeMismatch: a raw value had the wrong primitive kind. Either a
	// coercion was applied or the field takes its absent default.
	CodeTypeMismatch Code = "type_mismatch"

	// CodeFieldDecodeError: a handler failed or the value had the wrong shape.
	// The field takes its absent default.
	CodeFieldDecodeError Code = "field_decode_error"

	// CodeUnserializable: no handler could represent the value as a
	// primitive tree. The field is written as null.
	CodeUnserializable Code = "unserializable"
)

// Warning is one recoverable problem reported by decode or encode.
type Warning struct {
	Code    Code
	Record  string // Record kind that declared the field
	Path    string // Field path from the root record, e.g. "z.x" or "temps[2]"
	Index   int    // Position of the root record in a sequence, or -1
	Message string
}

// String returns a formatted warning line.
func (w Warning) String() string {
	var prefix []string
	if w.Index >= 0 {
		prefix = append(prefix, fmt.Sprintf("[%d]", w.Index))
	}
	if w.Path != "" {
		prefix = append(prefix, w.Path)
	}
	msg := fmt.Sprintf("[%s] %s", w.Code, w.Message)
	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}
	return msg
}

// Warnings is an accumulated list of recoverable problems.
type Warnings []Warning

// Count returns how many warnings carry code c.
func (ws Warnings) Count(c Code) int {
	n := 0
	for _, w := range ws {
		if w.Code == c {
			n++
		}
	}
	return n
}

// At returns the warnings for one field path.
func (ws Warnings) At(path string) Warnings {
	var out Warnings
	for _, w := range ws {
		if w.Path == path {
			out = append(out, w)
		}
	}
	return out
}

// collector accumulates warnings during one decode or encode call.
type collector struct {
	warnings Warnings
}

func (c *collector) add(code Code, record, path, format string, args ...any) {
	c.warnings = append(c.warnings, Warning{
		Code:    code,
		Record:  record,
		Path:    path,
		Index:   -1,
		Message: fmt.Sprintf(format, args...),
	})
}

// joinPath appends a field name to a parent path.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// indexPath appends an element index to a parent path.
func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
