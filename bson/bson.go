// Package bson provides a BSON format for record containers.
//
// BSON requires a document at the top level, so a container is written as
// {"records": [...]}.
package bson

import (
	"fmt"
	"time"

	"github.com/zoobzio/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContainerKey is the document key holding the record list.
const ContainerKey = "records"

// bsonFormat implements record.Format for BSON.
type bsonFormat struct{}

// New returns a BSON format.
func New() record.Format {
	return &bsonFormat{}
}

// ContentType returns the MIME type for BSON.
func (f *bsonFormat) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON. A list is wrapped in a container document;
// mapping keys keep their stored order.
func (f *bsonFormat) Marshal(v any) ([]byte, error) {
	val := toBSON(v)
	switch val.(type) {
	case bson.D:
		return bson.Marshal(val)
	case bson.A:
		return bson.Marshal(bson.D{{Key: ContainerKey, Value: val}})
	default:
		return bson.Marshal(v)
	}
}

func toBSON(v any) any {
	switch tv := v.(type) {
	case []any:
		out := make(bson.A, len(tv))
		for i, e := range tv {
			out[i] = toBSON(e)
		}
		return out
	case *record.Mapping:
		if tv == nil {
			return nil
		}
		out := make(bson.D, 0, tv.Len())
		for _, k := range tv.Keys() {
			e, _ := tv.Get(k)
			out = append(out, bson.E{Key: k, Value: toBSON(e)})
		}
		return out
	default:
		return v
	}
}

// Unmarshal decodes BSON data into v. When v is *any, a container document
// yields its record list and values become primitive trees; any other
// document yields a *record.Mapping.
func (f *bsonFormat) Unmarshal(data []byte, v any) error {
	p, ok := v.(*any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	var root any = doc
	if len(doc) == 1 && doc[0].Key == ContainerKey {
		root = doc[0].Value
	}
	tree, err := fromBSON(root)
	if err != nil {
		return err
	}
	normal, ok := record.Normalize(tree)
	if !ok {
		return fmt.Errorf("unsupported BSON value of type %T", tree)
	}
	*p = normal
	return nil
}

func fromBSON(v any) (any, error) {
	switch tv := v.(type) {
	case nil, bool, string, float64, int64:
		return tv, nil
	case int32:
		return int64(tv), nil
	case primitive.DateTime:
		return tv.Time().Unix(), nil
	case time.Time:
		return tv.Unix(), nil
	case primitive.A:
		out := make([]any, len(tv))
		for i, e := range tv {
			c, err := fromBSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case primitive.D:
		m := record.NewMapping(len(tv))
		for _, e := range tv {
			c, err := fromBSON(e.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", e.Key, err)
			}
			m.Set(e.Key, c)
		}
		return m, nil
	case primitive.M:
		m := make(map[string]any, len(tv))
		for k, e := range tv {
			c, err := fromBSON(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = c
		}
		return m, nil
	case primitive.Null, primitive.Undefined:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported BSON value of type %T", v)
	}
}
