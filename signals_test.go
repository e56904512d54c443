package record

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitProcessorCreated(_ *testing.T) {
	// Should not panic
	emitProcessorCreated(context.Background(), "application/json", "Water")
}

func TestEmitLoadStart(_ *testing.T) {
	emitLoadStart(context.Background(), "application/json", "Water", 64)
}

func TestEmitLoadComplete_Success(_ *testing.T) {
	emitLoadComplete(context.Background(), "application/json", "Water", 100*time.Millisecond, &Result{}, nil)
}

func TestEmitLoadComplete_Error(_ *testing.T) {
	emitLoadComplete(context.Background(), "application/json", "Water", 100*time.Millisecond, nil, errors.New("test error"))
}

func TestEmitStoreStart(_ *testing.T) {
	emitStoreStart(context.Background(), "application/json", "Water", 3)
}

func TestEmitStoreComplete_Success(_ *testing.T) {
	emitStoreComplete(context.Background(), "application/json", "Water", 1024, 100*time.Millisecond, &Result{}, nil)
}

func TestEmitStoreComplete_Error(_ *testing.T) {
	emitStoreComplete(context.Background(), "application/json", "Water", 0, 100*time.Millisecond, nil, errors.New("test error"))
}

func TestEmitResult(_ *testing.T) {
	res := &Result{
		Warnings: Warnings{{Code: CodeMissingField, Record: "Water", Path: "at", Index: 0}},
		Failures: []*RecordError{newRecordError(ErrNoHandler, 1, nil)},
	}
	emitResult(context.Background(), "Water", res)
	emitResult(context.Background(), "Water", nil)
}

func TestResultFields(t *testing.T) {
	if got := resultFields(nil); got != nil {
		t.Errorf("resultFields(nil) = %v, want nil", got)
	}
	if got := resultFields(&Result{}); len(got) != 3 {
		t.Errorf("resultFields() returned %d fields, want 3", len(got))
	}
}
