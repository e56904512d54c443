package record

import (
	"testing"
)

func TestClassify(t *testing.T) {
	water := MustSchema("Water", Field{Name: "at", Type: Temporal()})

	tests := []struct {
		name    string
		typ     *Type
		want    Category
		ordered bool
	}{
		{"int", Int(), CategoryPrimitive, false},
		{"float", Float(), CategoryPrimitive, false},
		{"bool", Bool(), CategoryPrimitive, false},
		{"str", Str(), CategoryPrimitive, false},
		{"time", Temporal(), CategoryPrimitive, false},
		{"optional", Optional(Int()), CategoryOptional, false},
		{"list", List(Int()), CategorySequence, true},
		{"set", Set(Int()), CategorySequence, false},
		{"nested", Nested(water), CategoryRecord, false},
		{"opaque", Opaque("duration"), CategoryOpaque, false},
		{"nil", nil, CategoryOpaque, false},
		{"zero", &Type{}, CategoryOpaque, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.typ)
			if c.Category != tt.want {
				t.Errorf("Classify() category = %v, want %v", c.Category, tt.want)
			}
			if c.Ordered != tt.ordered {
				t.Errorf("Classify() ordered = %v, want %v", c.Ordered, tt.ordered)
			}
		})
	}
}

func TestClassify_Members(t *testing.T) {
	if c := Classify(Temporal()); c.Primitive != PrimitiveTemporal {
		t.Errorf("Primitive = %v, want time", c.Primitive)
	}
	if c := Classify(Optional(List(Str()))); c.Elem.ID() != "list[str]" {
		t.Errorf("Elem = %v, want list[str]", c.Elem)
	}
	water := MustSchema("Water", Field{Name: "at", Type: Temporal()})
	if c := Classify(Nested(water)); c.Schema != water {
		t.Error("Schema should be the nested schema")
	}
}

func TestTypeIDs(t *testing.T) {
	reading := MustSchema("Reading", Field{Name: "v", Type: Float()})

	tests := []struct {
		typ  *Type
		want TypeID
	}{
		{Int(), TypeInt},
		{Temporal(), TypeTemporal},
		{Optional(Optional(Str())), "optional[str]"},
		{List(Set(Bool())), "list[set[bool]]"},
		{Optional(List(Nested(reading))), "optional[list[Reading]]"},
		{Opaque("duration"), "duration"},
	}
	for _, tt := range tests {
		if got := tt.typ.ID(); got != tt.want {
			t.Errorf("ID() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	reading := MustSchema("Reading", Field{Name: "v", Type: Float()})
	records := map[string]*Schema{"Reading": reading}

	tests := []struct {
		expr string
		want TypeID
	}{
		{"int", "int"},
		{"string", "str"},
		{"datetime", "time"},
		{" optional[ list[int] ] ", "optional[list[int]]"},
		{"set[str]", "set[str]"},
		{"Reading", "Reading"},
		{"list[Reading]", "list[Reading]"},
		{"duration", "duration"},
		{"pkg.Duration", "pkg.Duration"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, err := ParseType(tt.expr, records)
			if err != nil {
				t.Fatalf("ParseType() error: %v", err)
			}
			if typ.ID() != tt.want {
				t.Errorf("ParseType() = %q, want %q", typ.ID(), tt.want)
			}
		})
	}

	typ, _ := ParseType("Reading", records)
	if Classify(typ).Category != CategoryRecord {
		t.Error("known record name should parse as a nested record")
	}
	typ, _ = ParseType("Time", records)
	if Classify(typ).Category != CategoryOpaque {
		t.Error("keywords are case-sensitive; Time should be opaque")
	}
}

func TestParseType_Invalid(t *testing.T) {
	for _, expr := range []string{"", "list", "list[", "list[int", "set[]", "int]", "optional[int] x"} {
		if _, err := ParseType(expr, nil); err == nil {
			t.Errorf("ParseType(%q) should return error", expr)
		}
	}
}
