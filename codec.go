package record

// Format reads and writes the textual container for a record sequence.
//
// Marshal receives a []any of *Mapping values (and nested primitive trees)
// and must emit mapping keys in their stored order. Unmarshal decodes into a
// *any and must produce primitive trees: scalars, []any, and string-keyed
// mappings.
type Format interface {
	// ContentType returns the MIME type for this format (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
