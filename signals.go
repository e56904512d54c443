package record

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for record codec events.
var (
	SignalProcessorCreated = capitan.NewSignal("record.processor.created", "Processor instantiated")
	SignalLoadStart        = capitan.NewSignal("record.load.start", "Load operation beginning")
	SignalLoadComplete     = capitan.NewSignal("record.load.complete", "Load operation finished")
	SignalStoreStart       = capitan.NewSignal("record.store.start", "Store operation beginning")
	SignalStoreComplete    = capitan.NewSignal("record.store.complete", "Store operation finished")
	SignalFieldWarning     = capitan.NewSignal("record.field.warning", "Recoverable field problem")
	SignalRecordFailed     = capitan.NewSignal("record.record.failed", "Record skipped in a sequence")
)

// Keys for typed event data.
var (
	KeyContentType  = capitan.NewStringKey("content_type")
	KeyRecordType   = capitan.NewStringKey("record_type")
	KeySize         = capitan.NewIntKey("size")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyRecordCount  = capitan.NewIntKey("record_count")
	KeyWarningCount = capitan.NewIntKey("warning_count")
	KeyFailureCount = capitan.NewIntKey("failure_count")
	KeyField        = capitan.NewStringKey("field")
	KeyCode         = capitan.NewStringKey("code")
	KeyIndex        = capitan.NewIntKey("index")
	KeyError        = capitan.NewErrorKey("error")
)

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, recordType string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyRecordType.Field(recordType),
	)
}

// emitLoadStart emits an event when load begins.
func emitLoadStart(ctx context.Context, contentType, recordType string, size int) {
	capitan.Emit(ctx, SignalLoadStart,
		KeyContentType.Field(contentType),
		KeyRecordType.Field(recordType),
		KeySize.Field(size),
	)
}

// emitLoadComplete emits an event when load finishes.
func emitLoadComplete(ctx context.Context, contentType, recordType string, duration time.Duration, res *Result, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyRecordType.Field(recordType),
		KeyDuration.Field(duration),
	}
	fields = append(fields, resultFields(res)...)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalLoadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalLoadComplete, fields...)
	}
}

// emitStoreStart emits an event when store begins.
func emitStoreStart(ctx context.Context, contentType, recordType string, count int) {
	capitan.Emit(ctx, SignalStoreStart,
		KeyContentType.Field(contentType),
		KeyRecordType.Field(recordType),
		KeyRecordCount.Field(count),
	)
}

// emitStoreComplete emits an event when store finishes.
func emitStoreComplete(ctx context.Context, contentType, recordType string, size int, duration time.Duration, res *Result, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyRecordType.Field(recordType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	fields = append(fields, resultFields(res)...)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalStoreComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalStoreComplete, fields...)
	}
}

func resultFields(res *Result) []capitan.Field {
	if res == nil {
		return nil
	}
	return []capitan.Field{
		KeyRecordCount.Field(len(res.Records)),
		KeyWarningCount.Field(len(res.Warnings)),
		KeyFailureCount.Field(len(res.Failures)),
	}
}

// emitResult emits one event per warning and per failed record.
func emitResult(ctx context.Context, recordType string, res *Result) {
	if res == nil {
		return
	}
	for _, w := range res.Warnings {
		capitan.Emit(ctx, SignalFieldWarning,
			KeyRecordType.Field(w.Record),
			KeyField.Field(w.Path),
			KeyCode.Field(string(w.Code)),
			KeyIndex.Field(w.Index),
		)
	}
	for _, f := range res.Failures {
		capitan.Error(ctx, SignalRecordFailed,
			KeyRecordType.Field(recordType),
			KeyIndex.Field(f.Index),
			KeyError.Field(f),
		)
	}
}
