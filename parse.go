package record

import (
	"fmt"
	"unicode"
)

// ParseType parses a type expression such as "int", "optional[list[str]]",
// "set[time]", or "Reading". Bare names found in records resolve to nested
// record types; any other unknown name is an opaque type with that identity.
func ParseType(expr string, records map[string]*Schema) (*Type, error) {
	p := &typeParser{src: expr, records: records}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidType, p.src[p.pos:], p.pos, expr)
	}
	return t, nil
}

type typeParser struct {
	src     string
	pos     int
	records map[string]*Schema
}

func (p *typeParser) parse() (*Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("%w: expected type name at offset %d in %q", ErrInvalidType, p.pos, p.src)
	}

	switch name {
	case "optional", "list", "set":
		p.skipSpace()
		if !p.consume('[') {
			return nil, fmt.Errorf("%w: %s requires a type argument in %q", ErrInvalidType, name, p.src)
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(']') {
			return nil, fmt.Errorf("%w: unclosed %s[ in %q", ErrInvalidType, name, p.src)
		}
		switch name {
		case "optional":
			return Optional(elem), nil
		case "list":
			return List(elem), nil
		default:
			return Set(elem), nil
		}
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "str", "string":
		return Str(), nil
	case "time", "datetime":
		return Temporal(), nil
	}

	if s, ok := p.records[name]; ok {
		return Nested(s), nil
	}
	return Opaque(name), nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
