// Package schemafile loads record schemas declared in YAML.
//
// A schema file lists record kinds in dependency order; a field type may name
// any record declared above it:
//
//	records:
//	  - name: Water
//	    fields:
//	      - {name: at, type: time}
//	      - {name: glass_count, type: float}
//	  - name: Day
//	    fields:
//	      - {name: drinks, type: "list[Water]"}
//	root: Day
//
// When root is omitted the last declared record is the root.
package schemafile

import (
	"errors"
	"fmt"
	"os"

	"github.com/zoobzio/record"
	"gopkg.in/yaml.v3"
)

// ErrUnknownRecord is returned when a requested record kind is not declared.
var ErrUnknownRecord = errors.New("unknown record")

// File is a parsed schema file.
type File struct {
	records map[string]*record.Schema
	order   []string
	root    string
}

type fileDoc struct {
	Records []recordDoc `yaml:"records"`
	Root    string      `yaml:"root"`
}

type recordDoc struct {
	Name   string     `yaml:"name"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load reads and parses the schema file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses schema file contents.
func Parse(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidSchema, err)
	}
	if len(doc.Records) == 0 {
		return nil, fmt.Errorf("%w: no records declared", record.ErrInvalidSchema)
	}

	f := &File{records: make(map[string]*record.Schema, len(doc.Records))}
	for _, rd := range doc.Records {
		if _, dup := f.records[rd.Name]; dup {
			return nil, fmt.Errorf("%w: record %s declared twice", record.ErrInvalidSchema, rd.Name)
		}
		fields := make([]record.Field, 0, len(rd.Fields))
		for _, fd := range rd.Fields {
			t, err := record.ParseType(fd.Type, f.records)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", rd.Name, fd.Name, err)
			}
			fields = append(fields, record.Field{Name: fd.Name, Type: t})
		}
		s, err := record.NewSchema(rd.Name, fields...)
		if err != nil {
			return nil, err
		}
		f.records[s.Name()] = s
		f.order = append(f.order, s.Name())
	}

	f.root = doc.Root
	if f.root == "" {
		f.root = f.order[len(f.order)-1]
	}
	if _, ok := f.records[f.root]; !ok {
		return nil, fmt.Errorf("%w: root %s", ErrUnknownRecord, f.root)
	}
	return f, nil
}

// Root returns the root record schema.
func (f *File) Root() *record.Schema { return f.records[f.root] }

// Record returns the named record schema, or the root when name is empty.
func (f *File) Record(name string) (*record.Schema, error) {
	if name == "" {
		return f.Root(), nil
	}
	s, ok := f.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, name)
	}
	return s, nil
}

// Names returns the declared record names in file order.
func (f *File) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
