package integration

import (
	"context"
	"testing"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/bson"
	"github.com/zoobzio/record/json"
	"github.com/zoobzio/record/msgpack"
	recordtest "github.com/zoobzio/record/testing"
	"github.com/zoobzio/record/yaml"
)

func formats() map[string]record.Format {
	return map[string]record.Format{
		"json":    json.New(),
		"yaml":    yaml.New(),
		"msgpack": msgpack.New(),
		"bson":    bson.New(),
	}
}

func TestProcessor_StoreLoad(t *testing.T) {
	for name, f := range formats() {
		t.Run(name, func(t *testing.T) {
			testStoreLoad(t, f)
		})
	}
}

func testStoreLoad(t *testing.T, f record.Format) {
	t.Helper()

	schema := recordtest.ReadingSchema()
	proc, err := record.NewProcessor(schema, f)
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	first := recordtest.Reading(t)
	second, err := first.With("note", "window open")
	if err != nil {
		t.Fatalf("With error: %v", err)
	}
	second, err = second.With("temps", []any{})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}
	original := []*record.Record{first, second}

	data, stored, err := proc.Store(context.Background(), original)
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
	if !stored.OK() {
		t.Fatalf("Store reported problems: %v %v", stored.Warnings, stored.Failures)
	}

	loaded, err := proc.Load(context.Background(), data)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !loaded.OK() {
		t.Fatalf("Load reported problems: %v %v", loaded.Warnings, loaded.Failures)
	}

	if len(loaded.Records) != len(original) {
		t.Fatalf("Load returned %d records, want %d", len(loaded.Records), len(original))
	}
	for i := range original {
		if !original[i].Equal(loaded.Records[i]) {
			t.Errorf("record %d = %s, want %s", i, loaded.Records[i], original[i])
		}
	}
}

func TestStoreLoad_Empty(t *testing.T) {
	schema := recordtest.WaterSchema()
	for name, f := range formats() {
		t.Run(name, func(t *testing.T) {
			data, _, err := record.Dumps(nil, schema, f, nil)
			if err != nil {
				t.Fatalf("Dumps error: %v", err)
			}
			res, err := record.Loads(data, schema, f, nil)
			if err != nil {
				t.Fatalf("Loads error: %v", err)
			}
			if len(res.Records) != 0 || !res.OK() {
				t.Errorf("Loads(empty) = %d records, warnings %v", len(res.Records), res.Warnings)
			}
		})
	}
}

func TestUse_SharedAcrossFormats(t *testing.T) {
	record.Reset()
	schema := recordtest.WaterSchema()

	seen := make(map[*record.Processor]string)
	for name, f := range formats() {
		proc, err := record.Use(schema, f)
		if err != nil {
			t.Fatalf("Use(%s) error: %v", name, err)
		}
		if other, dup := seen[proc]; dup {
			t.Errorf("formats %s and %s share a processor", name, other)
		}
		seen[proc] = name
	}
}
