// Package testing provides test utilities for record.
package testing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/zoobzio/record"
)

// ErrScriptExhausted is returned by ScriptedPrompter when it runs out of
// scripted answers.
var ErrScriptExhausted = errors.New("script exhausted")

// WaterAt is the instant used by the sample Water record.
var WaterAt = time.Unix(1598856786, 0).UTC()

// WaterSchema returns the sample schema Water{at: time, glass_count: float}.
func WaterSchema() *record.Schema {
	return record.MustSchema("Water",
		record.Field{Name: "at", Type: record.Temporal()},
		record.Field{Name: "glass_count", Type: record.Float()},
	)
}

// ReadingSchema returns a schema exercising every wrapper and a nested record:
//
//	Reading{sensor: str, temps: list[float], tags: set[str],
//	        note: optional[str], water: Water}
func ReadingSchema() *record.Schema {
	return record.MustSchema("Reading",
		record.Field{Name: "sensor", Type: record.Str()},
		record.Field{Name: "temps", Type: record.List(record.Float())},
		record.Field{Name: "tags", Type: record.Set(record.Str())},
		record.Field{Name: "note", Type: record.Optional(record.Str())},
		record.Field{Name: "water", Type: record.Nested(WaterSchema())},
	)
}

// Water builds a Water record, failing the test on error.
func Water(tb testing.TB, at time.Time, glasses float64) *record.Record {
	tb.Helper()
	rec, err := record.NewRecord(WaterSchema(), map[string]any{
		"at":          at,
		"glass_count": glasses,
	})
	if err != nil {
		tb.Fatalf("NewRecord() error: %v", err)
	}
	return rec
}

// Reading builds a sample Reading record, failing the test on error.
func Reading(tb testing.TB) *record.Record {
	tb.Helper()
	rec, err := record.NewRecord(ReadingSchema(), map[string]any{
		"sensor": "kitchen",
		"temps":  []any{20.5, 21.0, 20.5},
		"tags":   record.NewSet("indoor", "north"),
		"note":   nil,
		"water":  Water(tb, WaterAt, 2),
	})
	if err != nil {
		tb.Fatalf("NewRecord() error: %v", err)
	}
	return rec
}

// ScriptedPrompter answers prompts from a fixed script.
//
// Each Prompt consumes the next entry of Inputs and parses it with the
// request's validator, as a line-editing front end would. Each Confirm
// consumes the next entry of Confirms. Requests and Questions record what was
// asked, in order.
type ScriptedPrompter struct {
	Inputs   []string
	Confirms []bool

	Requests  []record.Request
	Questions []string
}

// Prompt implements record.Prompter.
func (p *ScriptedPrompter) Prompt(req record.Request) (any, error) {
	p.Requests = append(p.Requests, req)
	if len(p.Inputs) == 0 {
		return nil, fmt.Errorf("prompt %s: %w", req.Path, ErrScriptExhausted)
	}
	in := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	if req.Validate.Parse == nil {
		return in, nil
	}
	return req.Validate.Parse(in)
}

// Confirm implements record.Prompter.
func (p *ScriptedPrompter) Confirm(req record.Request, question string) (bool, error) {
	p.Questions = append(p.Questions, question)
	if len(p.Confirms) == 0 {
		return false, fmt.Errorf("confirm %s: %w", req.Path, ErrScriptExhausted)
	}
	ok := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return ok, nil
}
