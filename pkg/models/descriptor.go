package models

// TypeKind identifies the logical type of a declared field.
type TypeKind int

const (
	// TypeUnknown is the zero value and never valid in a descriptor.
	TypeUnknown TypeKind = iota
	// TypeBool maps to glue boolean
	TypeBool
	// TypeInt8 maps to glue tinyint
	TypeInt8
	// TypeInt16 maps to glue smallint
	TypeInt16
	// TypeInt32 maps to glue int
	TypeInt32
	// TypeInt64 maps to glue bigint
	TypeInt64
	// TypeInt is a native-width integer, stored as bigint
	TypeInt
	// TypeFloat32 maps to glue float
	TypeFloat32
	// TypeFloat64 maps to glue double
	TypeFloat64
	// TypeString maps to glue string
	TypeString
	// TypeTimestamp maps to glue timestamp
	TypeTimestamp
	// TypeArray is a sequence, serialized as JSON text
	TypeArray
	// TypeObject is a nested structure, serialized as JSON text
	TypeObject
)

func (x TypeKind) String() string {
	switch x {
	case TypeBool:
		return "bool"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeInt:
		return "int"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeTimestamp:
		return "timestamp"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsComposite returns true for kinds that have no flat column representation
// and default to JSON text encoding.
func (x TypeKind) IsComposite() bool {
	return x == TypeArray || x == TypeObject
}

// Attr is a per-field attribute flag.
type Attr uint8

const (
	// AttrJSON tells to encode the field value as JSON text. Implied for
	// array and object kinds.
	AttrJSON Attr = 1 << iota
	// AttrEnum tells to encode the field value as enumeration string.
	AttrEnum
	// AttrIndex tells to use the field as a partition key.
	AttrIndex
	// AttrDateIndex tells to decompose the field into year/month/day
	// partition segments. The field must be a timestamp and at most one
	// field per record can have it.
	AttrDateIndex
)

// AttrSet is a set of Attr flags.
type AttrSet uint8

// Has returns true if all flags of attr are set.
func (x AttrSet) Has(attr Attr) bool {
	return uint8(x)&uint8(attr) == uint8(attr)
}

// Set returns a new AttrSet with attr added.
func (x AttrSet) Set(attr Attr) AttrSet {
	return AttrSet(uint8(x) | uint8(attr))
}

// FieldDescriptor describes one declared field of a record type. It is
// supplied once at generation time and never modified after that.
type FieldDescriptor struct {
	Name     string   `json:"name"`
	Rename   string   `json:"rename,omitempty"`
	Type     TypeKind `json:"type"`
	Optional bool     `json:"optional,omitempty"`
	Attrs    AttrSet  `json:"attrs,omitempty"`
	Comment  string   `json:"comment,omitempty"`
}

// EmittedName returns the column name used in emitted schemas. Rename wins
// over the declared name.
func (x FieldDescriptor) EmittedName() string {
	if x.Rename != "" {
		return x.Rename
	}
	return x.Name
}

// DerivedColumnNames returns the column names a date index field expands
// to. Empty for any other field.
func (x FieldDescriptor) DerivedColumnNames() []string {
	if !x.Attrs.Has(AttrDateIndex) {
		return nil
	}
	name := x.EmittedName()
	return []string{name + "_year", name + "_month", name + "_day"}
}

// OutputOptions selects which artifacts Generate produces.
type OutputOptions struct {
	GlueSchema    bool `json:"glue_schema"`
	ParquetSchema bool `json:"parquet_schema"`
	PartitionCode bool `json:"partition_code"`
}

// RecordDescriptor describes one record type: its name and ordered field
// list. It is the sole input of schema generation.
type RecordDescriptor struct {
	Name    string            `json:"name"`
	Fields  []FieldDescriptor `json:"fields"`
	Options OutputOptions     `json:"options"`
}

// DateIndexField returns the field flagged as date index, or nil.
func (x *RecordDescriptor) DateIndexField() *FieldDescriptor {
	for i := range x.Fields {
		if x.Fields[i].Attrs.Has(AttrDateIndex) {
			return &x.Fields[i]
		}
	}
	return nil
}

// Validate checks structural invariants of the descriptor. It must pass
// before any artifact is generated.
func (x *RecordDescriptor) Validate() error {
	if x.Name == "" {
		return ErrEmptyRecordName
	}

	seen := map[string]struct{}{}
	dateIndexCount := 0
	for _, f := range x.Fields {
		name := f.EmittedName()

		// A date index field also reserves its derived column names so
		// that no declared field can shadow them.
		for _, n := range append([]string{name}, f.DerivedColumnNames()...) {
			if _, ok := seen[n]; ok {
				return wrapFieldError(ErrDuplicateEmittedName, n)
			}
			seen[n] = struct{}{}
		}

		if f.Attrs.Has(AttrJSON) && f.Attrs.Has(AttrEnum) {
			return wrapFieldError(ErrConflictingAttributes, name)
		}

		if f.Attrs.Has(AttrDateIndex) {
			dateIndexCount++
			if f.Type != TypeTimestamp {
				return wrapFieldError(ErrInvalidDateIndex, name)
			}
		}
	}

	if dateIndexCount > 1 {
		return wrapFieldError(ErrInvalidDateIndex, x.Name)
	}

	return nil
}

// Record is one record instance keyed by emitted field name. Timestamp
// fields hold time.Time values.
type Record map[string]interface{}
