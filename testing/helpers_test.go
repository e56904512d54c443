package testing

import (
	"errors"
	"testing"

	"github.com/zoobzio/record"
)

func TestWaterSchema(t *testing.T) {
	s := WaterSchema()
	if s.Name() != "Water" || s.Len() != 2 {
		t.Errorf("WaterSchema() = %s, want Water with 2 fields", s)
	}
}

func TestReading(t *testing.T) {
	rec := Reading(t)
	w, ok := rec.Get("water")
	if !ok {
		t.Fatal("Reading() has no water field")
	}
	if _, ok := w.(*record.Record); !ok {
		t.Errorf("water = %T, want *record.Record", w)
	}
}

func TestScriptedPrompter(t *testing.T) {
	p := &ScriptedPrompter{Inputs: []string{"42"}, Confirms: []bool{true}}
	req := record.Request{Path: "n", Type: record.Int(), Validate: record.Validator{
		Parse: func(s string) (any, error) { return "parsed:" + s, nil },
	}}

	v, err := p.Prompt(req)
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	if v != "parsed:42" {
		t.Errorf("Prompt() = %v, want parsed:42", v)
	}

	ok, err := p.Confirm(req, "Add?")
	if err != nil || !ok {
		t.Errorf("Confirm() = %v, %v; want true, nil", ok, err)
	}

	if _, err := p.Prompt(req); !errors.Is(err, ErrScriptExhausted) {
		t.Errorf("Prompt() error = %v, want ErrScriptExhausted", err)
	}
	if _, err := p.Confirm(req, "Again?"); !errors.Is(err, ErrScriptExhausted) {
		t.Errorf("Confirm() error = %v, want ErrScriptExhausted", err)
	}
	if len(p.Requests) != 2 || len(p.Questions) != 2 {
		t.Errorf("recorded %d requests and %d questions, want 2 and 2", len(p.Requests), len(p.Questions))
	}
}
