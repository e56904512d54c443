package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/record"
)

func sampleResult() *record.Result {
	return &record.Result{
		Warnings: record.Warnings{{
			Code: record.CodeMissingField, Record: "Water", Path: "glass_count", Index: 2, Message: "no value for float",
		}},
		Failures: []*record.RecordError{{Err: record.ErrMalformedContainer, Index: 1, Cause: errors.New("Water expects a mapping")}},
	}
}

func TestLogResult(t *testing.T) {
	var buf bytes.Buffer
	logResult(newLogger(&buf, false), sampleResult())

	out := buf.String()
	for _, want := range []string{"no value for float", "path=glass_count", "code=missing_field", "record skipped", "Water expects a mapping"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func TestLogResult_Quiet(t *testing.T) {
	t.Setenv(quietEnv, "1")
	var buf bytes.Buffer
	logResult(newLogger(&buf, false), sampleResult())

	out := buf.String()
	if strings.Contains(out, "no value for float") {
		t.Errorf("warnings should be silenced:\n%s", out)
	}
	if !strings.Contains(out, "record skipped") {
		t.Errorf("failures should still be logged:\n%s", out)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	quiet := newLogger(&buf, false)
	quiet.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output without verbose: %s", buf.String())
	}
	loud := newLogger(&buf, true)
	loud.Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug output missing with verbose: %s", buf.String())
	}
}

func TestLogResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	logResult(newLogger(&buf, false), nil)
	if buf.Len() != 0 {
		t.Errorf("logResult(nil) wrote %s", buf.String())
	}
}
