// Package yaml provides a YAML format for record containers.
package yaml

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zoobzio/record"
	"gopkg.in/yaml.v3"
)

// yamlFormat implements record.Format for YAML.
type yamlFormat struct{}

// New returns a YAML format.
func New() record.Format {
	return &yamlFormat{}
}

// ContentType returns the MIME type for YAML.
func (f *yamlFormat) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML. Mapping keys keep their stored order.
func (f *yamlFormat) Marshal(v any) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v. When v is *any, integers become int64
// and timestamps become epoch seconds.
func (f *yamlFormat) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok {
		tree, err := canonical(*p)
		if err != nil {
			return err
		}
		*p = tree
	}
	return nil
}

func toNode(v any) (*yaml.Node, error) {
	switch tv := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(tv)}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(tv) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, e := range tv {
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case *record.Mapping:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if tv == nil || tv.Len() == 0 {
			m.Style = yaml.FlowStyle
			return m, nil
		}
		for _, k := range tv.Keys() {
			e, _ := tv.Get(k)
			val, err := toNode(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			m.Content = append(m.Content, key, val)
		}
		return m, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'f' && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// canonical rewrites decoded YAML into the primitive forms the record codec
// expects.
func canonical(v any) (any, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv.Unix(), nil
	case []any:
		for i, e := range tv {
			c, err := canonical(e)
			if err != nil {
				return nil, err
			}
			tv[i] = c
		}
		return tv, nil
	case map[string]any:
		for k, e := range tv {
			c, err := canonical(e)
			if err != nil {
				return nil, err
			}
			tv[k] = c
		}
		return tv, nil
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			c, err := canonical(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = c
		}
		return out, nil
	}
	n, ok := record.Normalize(v)
	if !ok {
		return nil, fmt.Errorf("unsupported YAML value of type %T", v)
	}
	return n, nil
}
