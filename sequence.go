package record

import (
	"bytes"
	"errors"
	"fmt"
)

// Result is the outcome of loading or dumping a record sequence.
type Result struct {
	// Records holds the records that decoded or encoded, in input order.
	Records []*Record

	// Warnings holds every recoverable problem; Warning.Index is the
	// position of the record it belongs to.
	Warnings Warnings

	// Failures holds records that were skipped, each wrapping ErrNoHandler,
	// ErrMalformedContainer, or ErrEncode.
	Failures []*RecordError
}

// OK reports whether the sequence was processed without warnings or failures.
func (r *Result) OK() bool {
	return len(r.Warnings) == 0 && len(r.Failures) == 0
}

func (r *Result) addWarnings(index int, ws Warnings) {
	for _, w := range ws {
		w.Index = index
		r.Warnings = append(r.Warnings, w)
	}
}

func (r *Result) addFailure(sentinel error, index int, cause error) {
	r.Failures = append(r.Failures, newRecordError(sentinel, index, cause))
}

// Loads decodes a container of records of schema s.
//
// Empty input, whitespace, and a null container all load as an empty
// sequence. Input the format cannot parse returns a CodecError wrapping
// ErrUnmarshal; a container that is not a list returns ErrMalformedContainer.
// Otherwise every element is decoded independently: an element that is not a
// mapping, or whose schema has a field with no handler, is recorded in
// Result.Failures and the rest still load.
func Loads(data []byte, s *Schema, f Format, ov *Overrides) (*Result, error) {
	res := &Result{}
	if len(bytes.TrimSpace(data)) == 0 {
		return res, nil
	}

	var tree any
	if err := f.Unmarshal(data, &tree); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	if tree == nil {
		return res, nil
	}
	items, ok := tree.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of %s records, found %s", ErrMalformedContainer, s.name, describe(tree))
	}

	r := &resolver{ov: ov}
	for i, item := range items {
		col := &collector{}
		rec, err := r.decodeRecord(s, item, "", col, true)
		res.addWarnings(i, col.warnings)
		if err != nil {
			sentinel := ErrMalformedContainer
			if errors.Is(err, ErrNoHandler) {
				sentinel = ErrNoHandler
			}
			res.addFailure(sentinel, i, err)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// Dumps encodes records of schema s into a container.
//
// Each record is encoded and trial-written on its own; a record the format
// rejects (for example a NaN float in JSON) is recorded in Result.Failures
// wrapping ErrEncode and left out of the output. Result.Records lists the
// records that were written. An empty sequence produces the format's empty
// container.
func Dumps(records []*Record, s *Schema, f Format, ov *Overrides) ([]byte, *Result, error) {
	res := &Result{}
	r := &resolver{ov: ov}
	trees := make([]any, 0, len(records))

	for i, rec := range records {
		col := &collector{}
		m, err := r.encodeRecord(s, rec, "", col, true)
		res.addWarnings(i, col.warnings)
		if err != nil {
			res.addFailure(ErrEncode, i, err)
			continue
		}
		if _, err := f.Marshal([]any{m}); err != nil {
			res.addFailure(ErrEncode, i, err)
			continue
		}
		trees = append(trees, m)
		res.Records = append(res.Records, rec)
	}

	data, err := f.Marshal(trees)
	if err != nil {
		return nil, res, newCodecError(ErrMarshal, err)
	}
	return data, res, nil
}
