// Package msgpack provides a MessagePack format for record containers.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/record"
)

// msgpackFormat implements record.Format for MessagePack.
type msgpackFormat struct{}

// New returns a MessagePack format.
func New() record.Format {
	return &msgpackFormat{}
}

// ContentType returns the MIME type for MessagePack.
func (f *msgpackFormat) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack. Mapping keys keep their stored order and
// integers use the smallest encoding that holds them.
func (f *msgpackFormat) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := encodeTree(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTree(enc *msgpack.Encoder, v any) error {
	switch tv := v.(type) {
	case []any:
		if err := enc.EncodeArrayLen(len(tv)); err != nil {
			return err
		}
		for _, e := range tv {
			if err := encodeTree(enc, e); err != nil {
				return err
			}
		}
		return nil
	case *record.Mapping:
		if tv == nil {
			return enc.EncodeNil()
		}
		if err := enc.EncodeMapLen(tv.Len()); err != nil {
			return err
		}
		for _, k := range tv.Keys() {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			e, _ := tv.Get(k)
			if err := encodeTree(enc, e); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
		}
		return nil
	default:
		return enc.Encode(v)
	}
}

// Unmarshal decodes MessagePack data into v. When v is *any, numbers become
// int64 or float64 and mappings become *record.Mapping.
func (f *msgpackFormat) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok && *p != nil {
		tree, ok := record.Normalize(*p)
		if !ok {
			return fmt.Errorf("unsupported MessagePack value of type %T", *p)
		}
		*p = tree
	}
	return nil
}
