package record

// Primitive identifies one of the built-in scalar kinds.
type Primitive uint8

const (
	PrimitiveInt Primitive = iota + 1
	PrimitiveFloat
	PrimitiveBool
	PrimitiveStr
	PrimitiveTemporal
)

// String returns the TypeID of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimitiveInt:
		return "int"
	case PrimitiveFloat:
		return "float"
	case PrimitiveBool:
		return "bool"
	case PrimitiveStr:
		return "str"
	case PrimitiveTemporal:
		return "time"
	default:
		return "unknown"
	}
}

// TypeID is the stable identifier of a declared type.
// Type-level override maps are keyed by TypeID.
type TypeID string

// Built-in type identifiers.
const (
	TypeInt      TypeID = "int"
	TypeFloat    TypeID = "float"
	TypeBool     TypeID = "bool"
	TypeStr      TypeID = "str"
	TypeTemporal TypeID = "time"
)

type typeShape uint8

const (
	shapePrimitive typeShape = iota + 1
	shapeOptional
	shapeList
	shapeSet
	shapeRecord
	shapeOpaque
)

// Type is a declared field type. Types form an explicit tree built once at
// schema declaration and are never mutated afterwards.
//
// Construct types with Int, Float, Bool, Str, Temporal, Optional, List, Set,
// Nested, and Opaque.
type Type struct {
	shape     typeShape
	primitive Primitive
	elem      *Type
	schema    *Schema
	id        TypeID
}

var (
	intType      = &Type{shape: shapePrimitive, primitive: PrimitiveInt, id: TypeInt}
	floatType    = &Type{shape: shapePrimitive, primitive: PrimitiveFloat, id: TypeFloat}
	boolType     = &Type{shape: shapePrimitive, primitive: PrimitiveBool, id: TypeBool}
	strType      = &Type{shape: shapePrimitive, primitive: PrimitiveStr, id: TypeStr}
	temporalType = &Type{shape: shapePrimitive, primitive: PrimitiveTemporal, id: TypeTemporal}
)

// Int returns the integer primitive type.
func Int() *Type { return intType }

// Float returns the floating-point primitive type.
func Float() *Type { return floatType }

// Bool returns the boolean primitive type.
func Bool() *Type { return boolType }

// Str returns the string primitive type.
func Str() *Type { return strType }

// Temporal returns the instant-in-time primitive type.
// Temporal values are persisted as integer epoch seconds in UTC.
func Temporal() *Type { return temporalType }

// Optional wraps t so that an absent value is permitted.
// Optional(Optional(t)) collapses to Optional(t).
func Optional(t *Type) *Type {
	if t.shape == shapeOptional {
		return t
	}
	return &Type{shape: shapeOptional, elem: t, id: TypeID("optional[" + string(t.id) + "]")}
}

// List declares an ordered sequence of t.
func List(t *Type) *Type {
	return &Type{shape: shapeList, elem: t, id: TypeID("list[" + string(t.id) + "]")}
}

// Set declares an unordered sequence of t. Duplicate values are dropped on decode.
func Set(t *Type) *Type {
	return &Type{shape: shapeSet, elem: t, id: TypeID("set[" + string(t.id) + "]")}
}

// Nested declares a field holding a record of schema s.
func Nested(s *Schema) *Type {
	return &Type{shape: shapeRecord, schema: s, id: TypeID(s.Name())}
}

// Opaque declares a type the codec has no built-in handling for.
// Values of opaque types require custom handlers keyed by id.
func Opaque(id string) *Type {
	return &Type{shape: shapeOpaque, id: TypeID(id)}
}

// ID returns the stable identifier of the type.
func (t *Type) ID() TypeID { return t.id }

// Elem returns the wrapped type of an Optional, List, or Set, or nil.
func (t *Type) Elem() *Type { return t.elem }

// Schema returns the schema of a nested record type, or nil.
func (t *Type) Schema() *Schema { return t.schema }

// String returns the type expression, which ParseType accepts.
func (t *Type) String() string { return string(t.id) }
