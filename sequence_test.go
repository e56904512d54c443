package record_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/json"
	recordtest "github.com/zoobzio/record/testing"
)

const waterText = `[{"at":1598856786,"glass_count":2.0}]`

func TestDumps_Water(t *testing.T) {
	s := recordtest.WaterSchema()
	data, res, err := record.Dumps([]*record.Record{recordtest.Water(t, recordtest.WaterAt, 2)}, s, json.New(json.Compact()), nil)
	if err != nil {
		t.Fatalf("Dumps() error: %v", err)
	}
	if !res.OK() {
		t.Errorf("Dumps() warnings %v failures %v", res.Warnings, res.Failures)
	}
	if string(data) != waterText {
		t.Errorf("Dumps() = %s, want %s", data, waterText)
	}
}

func TestLoads_Water(t *testing.T) {
	s := recordtest.WaterSchema()
	res, err := record.Loads([]byte(waterText), s, json.New(), nil)
	if err != nil {
		t.Fatalf("Loads() error: %v", err)
	}
	if !res.OK() || len(res.Records) != 1 {
		t.Fatalf("Loads() = %d records, warnings %v, failures %v", len(res.Records), res.Warnings, res.Failures)
	}
	if want := recordtest.Water(t, recordtest.WaterAt, 2); !res.Records[0].Equal(want) {
		t.Errorf("Loads() = %s, want %s", res.Records[0], want)
	}
}

func TestLoads_Empty(t *testing.T) {
	s := recordtest.WaterSchema()
	for _, in := range []string{"", "  \n\t", "null", "[]"} {
		res, err := record.Loads([]byte(in), s, json.New(), nil)
		if err != nil {
			t.Errorf("Loads(%q) error: %v", in, err)
			continue
		}
		if len(res.Records) != 0 || !res.OK() {
			t.Errorf("Loads(%q) = %d records, want empty", in, len(res.Records))
		}
	}
}

func TestDumps_Empty(t *testing.T) {
	data, res, err := record.Dumps(nil, recordtest.WaterSchema(), json.New(), nil)
	if err != nil {
		t.Fatalf("Dumps() error: %v", err)
	}
	if string(data) != "[]" || !res.OK() {
		t.Errorf("Dumps(nil) = %s", data)
	}
}

func TestLoads_ContainerErrors(t *testing.T) {
	s := recordtest.WaterSchema()

	_, err := record.Loads([]byte(`{"at": 1}`), s, json.New(), nil)
	if !errors.Is(err, record.ErrMalformedContainer) {
		t.Errorf("Loads(mapping) error = %v, want ErrMalformedContainer", err)
	}

	_, err = record.Loads([]byte(`[{"at":`), s, json.New(), nil)
	if !errors.Is(err, record.ErrUnmarshal) {
		t.Errorf("Loads(truncated) error = %v, want ErrUnmarshal", err)
	}
	var ce *record.CodecError
	if !errors.As(err, &ce) || ce.Cause == nil {
		t.Errorf("Loads(truncated) error = %#v, want CodecError with cause", err)
	}
}

func TestLoads_PerRecordIsolation(t *testing.T) {
	s := recordtest.WaterSchema()
	in := `[{"at":1,"glass_count":1.5}, 7, {"at":2}]`

	res, err := record.Loads([]byte(in), s, json.New(), nil)
	if err != nil {
		t.Fatalf("Loads() error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("Loads() = %d records, want 2", len(res.Records))
	}
	if len(res.Failures) != 1 {
		t.Fatalf("Loads() failures = %v, want 1", res.Failures)
	}
	f := res.Failures[0]
	if f.Index != 1 || !errors.Is(f, record.ErrMalformedContainer) {
		t.Errorf("failure = %v (index %d), want malformed container at 1", f, f.Index)
	}

	if len(res.Warnings) != 1 {
		t.Fatalf("Loads() warnings = %v, want 1", res.Warnings)
	}
	w := res.Warnings[0]
	if w.Index != 2 || w.Code != record.CodeMissingField || w.Path != "glass_count" {
		t.Errorf("warning = %v, want missing glass_count at 2", w)
	}
	if v, _ := res.Records[1].Get("glass_count"); v != nil {
		t.Errorf("glass_count = %v, want nil", v)
	}
}

func TestLoads_NoHandlerFailsEveryRecord(t *testing.T) {
	s := record.MustSchema("Timer", record.Field{Name: "length", Type: record.Opaque("duration")})
	res, err := record.Loads([]byte(`[{"length":"3m"},{}]`), s, json.New(), nil)
	if err != nil {
		t.Fatalf("Loads() error: %v", err)
	}
	if len(res.Records) != 0 || len(res.Failures) != 2 {
		t.Fatalf("Loads() = %d records, %d failures", len(res.Records), len(res.Failures))
	}
	for i, f := range res.Failures {
		if f.Index != i || !errors.Is(f, record.ErrNoHandler) {
			t.Errorf("failure %d = %v, want ErrNoHandler", i, f)
		}
	}
}

func TestDumps_EncodeFailureDropsRecord(t *testing.T) {
	s := recordtest.WaterSchema()
	records := []*record.Record{
		recordtest.Water(t, recordtest.WaterAt, 2),
		recordtest.Water(t, recordtest.WaterAt, math.NaN()),
		recordtest.Water(t, recordtest.WaterAt, 3),
	}

	data, res, err := record.Dumps(records, s, json.New(json.Compact()), nil)
	if err != nil {
		t.Fatalf("Dumps() error: %v", err)
	}
	want := `[{"at":1598856786,"glass_count":2.0},{"at":1598856786,"glass_count":3.0}]`
	if string(data) != want {
		t.Errorf("Dumps() = %s, want %s", data, want)
	}
	if len(res.Records) != 2 || len(res.Failures) != 1 {
		t.Fatalf("Dumps() = %d records, %d failures", len(res.Records), len(res.Failures))
	}
	if f := res.Failures[0]; f.Index != 1 || !errors.Is(f, record.ErrEncode) {
		t.Errorf("failure = %v, want ErrEncode at 1", f)
	}
}

func TestDumps_WarningIndex(t *testing.T) {
	s := recordtest.WaterSchema()
	records := []*record.Record{
		recordtest.Water(t, recordtest.WaterAt, 1),
		record.MustRecord(s, map[string]any{"at": recordtest.WaterAt}),
	}

	_, res, err := record.Dumps(records, s, json.New(), nil)
	if err != nil {
		t.Fatalf("Dumps() error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Dumps() warnings = %v, want 1", res.Warnings)
	}
	if w := res.Warnings[0]; w.Index != 1 || w.Code != record.CodeMissingField {
		t.Errorf("warning = %v, want missing_field at 1", w)
	}
}

func TestDumpsLoads_Idempotent(t *testing.T) {
	s := recordtest.WaterSchema()
	f := json.New(json.Compact())
	in := `[{"at":1598856786,"glass_count":2.0},{"at":1598860386,"glass_count":0.5}]`

	res, err := record.Loads([]byte(in), s, f, nil)
	if err != nil || !res.OK() {
		t.Fatalf("Loads() = %v, %v", res, err)
	}
	out, res, err := record.Dumps(res.Records, s, f, nil)
	if err != nil || !res.OK() {
		t.Fatalf("Dumps() = %v, %v", res, err)
	}
	if string(out) != in {
		t.Errorf("Dumps(Loads(x)) = %s, want %s", out, in)
	}
}

func TestLoads_NestedRoundTrip(t *testing.T) {
	s := recordtest.ReadingSchema()
	f := json.New()
	records := []*record.Record{recordtest.Reading(t), recordtest.Reading(t)}

	data, res, err := record.Dumps(records, s, f, nil)
	if err != nil || !res.OK() {
		t.Fatalf("Dumps() = %v, %v", res, err)
	}
	back, err := record.Loads(data, s, f, nil)
	if err != nil {
		t.Fatalf("Loads() error: %v", err)
	}
	if !back.OK() || len(back.Records) != 2 {
		t.Fatalf("Loads() warnings %v failures %v", back.Warnings, back.Failures)
	}
	for i, rec := range back.Records {
		if !rec.Equal(records[i]) {
			t.Errorf("record %d = %s, want %s", i, rec, records[i])
		}
	}
}
