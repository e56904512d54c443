package record

// Overrides holds caller-supplied handlers for one encode, decode, or
// construct call. Overrides never replace the built-ins; they are consulted
// first, in this order:
//
//  1. Attribute overrides keyed by "Record.field", then by bare "field".
//     Bare names apply only to fields of the root record.
//  2. Type overrides keyed by the declared TypeID. For Optional(T) and
//     List(T)/Set(T), a type override for T is used for the wrapped value.
//
// Attribute and declared-type overrides receive the raw value as-is,
// including nil for an explicit null. A missing key never reaches a handler.
//
// The codec only reads the maps; it is safe to share an Overrides between
// concurrent calls as long as the caller does not modify it meanwhile.
type Overrides struct {
	TypeValidators    map[TypeID]Validator
	AttrValidators    map[string]Validator
	TypeSerializers   map[TypeID]Serializer
	AttrSerializers   map[string]Serializer
	TypeDeserializers map[TypeID]Deserializer
	AttrDeserializers map[string]Deserializer
}

// attrKeys lists the attribute keys consulted for a field, most specific first.
func attrKeys(record, field string, root bool) []string {
	if root {
		return []string{record + "." + field, field}
	}
	return []string{record + "." + field}
}

func (o *Overrides) attrSerializer(record, field string, root bool) (Serializer, string, bool) {
	if o == nil {
		return nil, "", false
	}
	for _, k := range attrKeys(record, field, root) {
		if fn, ok := o.AttrSerializers[k]; ok && fn != nil {
			return fn, k, true
		}
	}
	return nil, "", false
}

func (o *Overrides) attrDeserializer(record, field string, root bool) (Deserializer, string, bool) {
	if o == nil {
		return nil, "", false
	}
	for _, k := range attrKeys(record, field, root) {
		if fn, ok := o.AttrDeserializers[k]; ok && fn != nil {
			return fn, k, true
		}
	}
	return nil, "", false
}

func (o *Overrides) attrValidator(record, field string, root bool) (Validator, string, bool) {
	if o == nil {
		return Validator{}, "", false
	}
	for _, k := range attrKeys(record, field, root) {
		if v, ok := o.AttrValidators[k]; ok && v.Parse != nil {
			return v, k, true
		}
	}
	return Validator{}, "", false
}

func (o *Overrides) typeSerializer(id TypeID) (Serializer, bool) {
	if o == nil {
		return nil, false
	}
	fn, ok := o.TypeSerializers[id]
	return fn, ok && fn != nil
}

func (o *Overrides) typeDeserializer(id TypeID) (Deserializer, bool) {
	if o == nil {
		return nil, false
	}
	fn, ok := o.TypeDeserializers[id]
	return fn, ok && fn != nil
}

func (o *Overrides) typeValidator(id TypeID) (Validator, bool) {
	if o == nil {
		return Validator{}, false
	}
	v, ok := o.TypeValidators[id]
	return v, ok && v.Parse != nil
}
