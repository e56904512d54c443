package record

import (
	"errors"
	"sync"
)

var errNoFormat = errors.New("nil format")

// registryKey combines schema shape and format for cache lookup.
type registryKey struct {
	fingerprint string
	contentType string
}

var (
	registry   = make(map[registryKey]*Processor)
	registryMu sync.RWMutex
)

// Use returns a cached processor or builds a new one.
// The processor is cached by schema fingerprint and format content type, so
// schemas declared separately with the same shape share a processor.
// Overrides set on a shared processor apply to every user of it.
func Use(s *Schema, f Format) (*Processor, error) {
	if s == nil {
		return nil, ErrInvalidSchema
	}
	if f == nil {
		return nil, newCodecError(ErrMarshal, errNoFormat)
	}
	key := registryKey{fingerprint: s.Fingerprint(), contentType: f.ContentType()}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	processor, err := NewProcessor(s, f)
	if err != nil {
		return nil, err
	}

	registry[key] = processor
	return processor, nil
}

// Reset clears the processor registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Processor)
}
