package models

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrUnknownTypeName is returned when a descriptor file uses a type name
// that is not defined.
var ErrUnknownTypeName = errors.New("unknown type name")

// ErrUnknownAttrName is returned when a descriptor file uses an attribute
// name that is not defined.
var ErrUnknownAttrName = errors.New("unknown attribute name")

var typeKindNames = map[string]TypeKind{
	"bool":      TypeBool,
	"int8":      TypeInt8,
	"int16":     TypeInt16,
	"int32":     TypeInt32,
	"int64":     TypeInt64,
	"int":       TypeInt,
	"float32":   TypeFloat32,
	"float64":   TypeFloat64,
	"string":    TypeString,
	"timestamp": TypeTimestamp,
	"array":     TypeArray,
	"object":    TypeObject,
}

// ParseTypeKind converts a type name of a descriptor file to TypeKind.
func ParseTypeKind(name string) (TypeKind, error) {
	kind, ok := typeKindNames[name]
	if !ok {
		return TypeUnknown, errors.Wrap(ErrUnknownTypeName, name)
	}
	return kind, nil
}

// MarshalJSON of TypeKind emits the type name.
func (x TypeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON of TypeKind accepts the type name.
func (x *TypeKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	kind, err := ParseTypeKind(name)
	if err != nil {
		return err
	}
	*x = kind
	return nil
}

var attrNames = []struct {
	name string
	attr Attr
}{
	{"json", AttrJSON},
	{"enum", AttrEnum},
	{"index", AttrIndex},
	{"date_index", AttrDateIndex},
}

// MarshalJSON of AttrSet emits the list of set attribute names.
func (x AttrSet) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, entry := range attrNames {
		if x.Has(entry.attr) {
			names = append(names, entry.name)
		}
	}
	return json.Marshal(names)
}

// UnmarshalJSON of AttrSet accepts a list of attribute names.
func (x *AttrSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	var attrs AttrSet
	for _, name := range names {
		found := false
		for _, entry := range attrNames {
			if entry.name == name {
				attrs = attrs.Set(entry.attr)
				found = true
				break
			}
		}
		if !found {
			return errors.Wrap(ErrUnknownAttrName, name)
		}
	}

	*x = attrs
	return nil
}
