package record

import (
	"context"
	"sync"
	"time"
)

// Processor binds a schema to a format and a set of overrides, and loads and
// stores record sequences with lifecycle signals.
//
// Processors are safe for concurrent use. SetOverrides may be called at any
// time; calls already in progress keep the overrides they started with.
type Processor struct {
	schema *Schema
	format Format

	// Mutable configuration protected by mu
	mu        sync.RWMutex
	overrides *Overrides
}

// NewProcessor creates a Processor for records of schema s written in format f.
func NewProcessor(s *Schema, f Format) (*Processor, error) {
	if s == nil {
		return nil, ErrInvalidSchema
	}
	if f == nil {
		return nil, newCodecError(ErrMarshal, errNoFormat)
	}

	p := &Processor{
		schema: s,
		format: f,
	}

	emitProcessorCreated(context.Background(), f.ContentType(), s.Name())
	return p, nil
}

// Schema returns the processor's schema.
func (p *Processor) Schema() *Schema { return p.schema }

// Format returns the processor's format.
func (p *Processor) Format() Format { return p.format }

// SetOverrides replaces the overrides used by later calls.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor) SetOverrides(ov *Overrides) *Processor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overrides = ov
	return p
}

func (p *Processor) currentOverrides() *Overrides {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.overrides
}

// Validate checks that every field of the schema, at any nesting depth, has
// a deserializer under the current overrides. Loading a schema that fails
// validation records every element as a failure.
func (p *Processor) Validate() error {
	r := &resolver{ov: p.currentOverrides()}
	_, err := r.recordDecoders(p.schema, true)
	return err
}

// Load decodes a container of records.
func (p *Processor) Load(ctx context.Context, data []byte) (*Result, error) {
	contentType := p.format.ContentType()
	start := time.Now()
	emitLoadStart(ctx, contentType, p.schema.Name(), len(data))

	res, err := Loads(data, p.schema, p.format, p.currentOverrides())
	emitResult(ctx, p.schema.Name(), res)
	emitLoadComplete(ctx, contentType, p.schema.Name(), time.Since(start), res, err)
	return res, err
}

// Store encodes records into a container.
func (p *Processor) Store(ctx context.Context, records []*Record) ([]byte, *Result, error) {
	contentType := p.format.ContentType()
	start := time.Now()
	emitStoreStart(ctx, contentType, p.schema.Name(), len(records))

	data, res, err := Dumps(records, p.schema, p.format, p.currentOverrides())
	emitResult(ctx, p.schema.Name(), res)
	emitStoreComplete(ctx, contentType, p.schema.Name(), len(data), time.Since(start), res, err)
	return data, res, err
}

// Decode decodes a single record tree.
func (p *Processor) Decode(tree any) (*Record, Warnings, error) {
	return Decode(p.schema, tree, p.currentOverrides())
}

// Encode encodes a single record.
func (p *Processor) Encode(rec *Record) (*Mapping, Warnings, error) {
	return Encode(p.schema, rec, p.currentOverrides())
}
