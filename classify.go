package record

// Category is the closed set of shapes a declared type can classify into.
type Category uint8

const (
	CategoryOpaque Category = iota
	CategoryPrimitive
	CategoryOptional
	CategorySequence
	CategoryRecord
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryOptional:
		return "optional"
	case CategorySequence:
		return "sequence"
	case CategoryRecord:
		return "record"
	default:
		return "opaque"
	}
}

// Classification describes a declared type's shape.
// Only the members relevant to Category are set.
type Classification struct {
	Category  Category
	Primitive Primitive // CategoryPrimitive
	Elem      *Type     // CategoryOptional, CategorySequence
	Ordered   bool      // CategorySequence
	Schema    *Schema   // CategoryRecord
}

// Classify inspects a declared type. It is total: anything that is not a
// recognized shape, including nil, classifies as opaque.
func Classify(t *Type) Classification {
	if t == nil {
		return Classification{Category: CategoryOpaque}
	}
	switch t.shape {
	case shapePrimitive:
		return Classification{Category: CategoryPrimitive, Primitive: t.primitive}
	case shapeOptional:
		return Classification{Category: CategoryOptional, Elem: t.elem}
	case shapeList:
		return Classification{Category: CategorySequence, Elem: t.elem, Ordered: true}
	case shapeSet:
		return Classification{Category: CategorySequence, Elem: t.elem}
	case shapeRecord:
		if t.schema == nil {
			return Classification{Category: CategoryOpaque}
		}
		return Classification{Category: CategoryRecord, Schema: t.schema}
	default:
		return Classification{Category: CategoryOpaque}
	}
}
