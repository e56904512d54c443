// Package record converts fixed-shape records of named, typed fields to and
// from primitive value trees, driven by a declared schema.
//
// A schema is declared once per record kind:
//
//	water := record.MustSchema("Water",
//	    record.Field{Name: "at", Type: record.Temporal()},
//	    record.Field{Name: "glass_count", Type: record.Float()},
//	)
//
// and the same declaration drives decoding, encoding, whole-file loading and
// storing, and interactive construction.
//
// # Types
//
// Declared types are built from constructors and may nest to any depth:
//
//   - Int, Float, Bool, Str, Temporal - primitives
//   - Optional(T) - T or absent
//   - List(T), Set(T) - ordered and unordered sequences
//   - Nested(schema) - a nested record
//   - Opaque(id) - anything else; needs caller-supplied handlers
//
// Every type has a TypeID ("int", "optional[list[str]]", "Reading",
// "duration") used to key type-level overrides. ParseType reads the same
// notation from text.
//
// # Handler Resolution
//
// For each field, the first match wins:
//
//  1. An attribute override ("Record.field", or a bare root field name)
//  2. A type override for the declared type, or for the type it wraps
//  3. The built-in handler for a primitive
//  4. Recursion into a nested record
//
// Otherwise the field has no handler and the record fails with ErrNoHandler.
// Overrides are passed per call in an Overrides value and never change
// global state. Resolve reports which step wins for a given field.
//
// # Warn and Continue
//
// Decode and Encode degrade per field instead of failing. A missing key,
// a value of the wrong kind, a failing handler, or an unrepresentable value
// becomes a Warning with a Code, and the field takes its absent default
// (decode) or null (encode):
//
//   - missing_field - no value for the field
//   - type_mismatch - wrong primitive kind; coerced or defaulted
//   - field_decode_error - handler failed or the value had the wrong shape
//   - unserializable - no handler could represent the value
//
// Fatal errors are limited to the smallest unit they affect: ErrNoHandler
// aborts one record, ErrEncode drops one record from Dumps, and
// ErrMalformedContainer rejects a container that is not a list.
//
// # Sequences and Formats
//
// Loads and Dumps work on a whole container of records in a Format. The
// following formats are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// A Processor binds a schema, a format, and overrides, and emits capitan
// signals for each load and store. Use caches processors by schema shape and
// content type.
//
// # Interactive Construction
//
// Construct asks a Prompter for each field, depth-first in schema order,
// using validators resolved by the same rules as serializers. Edit re-asks a
// single field of an existing record.
//
// # Deriving Schemas
//
// Derive builds a schema from a Go struct type, reading `record` tags:
//
//	type Water struct {
//	    At         time.Time
//	    GlassCount float64
//	    Note       *string `record:"note,type=str"`
//	}
//
//	s, err := record.Derive[Water]()
package record
