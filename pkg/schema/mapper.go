package schema

import (
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

type typeEntry struct {
	glueType    string
	parquetType string
	utf8        bool
}

// Glue type names follow Hive's ColumnType definitions. Parquet physical
// types follow the Hive serializer convention of Firehose: timestamps are
// INT96, text is BYTE_ARRAY with UTF8 annotation.
var typeTable = map[models.TypeKind]typeEntry{
	models.TypeBool:      {glueType: "boolean", parquetType: "BOOLEAN"},
	models.TypeInt8:      {glueType: "tinyint", parquetType: "INT32"},
	models.TypeInt16:     {glueType: "smallint", parquetType: "INT32"},
	models.TypeInt32:     {glueType: "int", parquetType: "INT32"},
	models.TypeInt64:     {glueType: "bigint", parquetType: "INT64"},
	models.TypeInt:       {glueType: "bigint", parquetType: "INT64"},
	models.TypeFloat32:   {glueType: "float", parquetType: "FLOAT"},
	models.TypeFloat64:   {glueType: "double", parquetType: "DOUBLE"},
	models.TypeString:    {glueType: "string", parquetType: "BYTE_ARRAY", utf8: true},
	models.TypeTimestamp: {glueType: "timestamp", parquetType: "INT96"},
}

// textEntry is used for JSON-encoded and enumeration columns. Both are
// plain strings on glue and parquet sides for engine portability.
var textEntry = typeEntry{glueType: "string", parquetType: "BYTE_ARRAY", utf8: true}

// MapType converts one field descriptor to its emitted columns. A normal
// field yields exactly one column. A date index field is not emitted itself
// but yields three derived columns (<name>_year, <name>_month, <name>_day)
// at the field's position.
func MapType(f models.FieldDescriptor) ([]models.ColumnSpec, error) {
	if f.Attrs.Has(models.AttrJSON) && f.Attrs.Has(models.AttrEnum) {
		return nil, errors.Wrapf(models.ErrConflictingAttributes, "field '%s'", f.EmittedName())
	}

	if f.Attrs.Has(models.AttrDateIndex) {
		if f.Type != models.TypeTimestamp {
			return nil, errors.Wrapf(models.ErrInvalidDateIndex,
				"field '%s' must be timestamp, got %s", f.EmittedName(), f.Type)
		}
		return dateIndexColumns(f), nil
	}

	// The composite-kind JSON default resolves first, then explicit
	// attributes override. Both resolve to the same text entry, which
	// keeps an explicit enum on a composite field valid.
	var entry typeEntry
	switch {
	case f.Type.IsComposite(), f.Attrs.Has(models.AttrJSON), f.Attrs.Has(models.AttrEnum):
		entry = textEntry
	default:
		var ok bool
		if entry, ok = typeTable[f.Type]; !ok {
			return nil, errors.Errorf("unsupported type kind %s of field '%s'", f.Type, f.EmittedName())
		}
	}

	return []models.ColumnSpec{{
		Name:        f.EmittedName(),
		GlueType:    entry.glueType,
		ParquetType: entry.parquetType,
		UTF8:        entry.utf8,
		Optional:    f.Optional,
		Comment:     f.Comment,
	}}, nil
}

func dateIndexColumns(f models.FieldDescriptor) []models.ColumnSpec {
	names := f.DerivedColumnNames()
	comment := "Extracted from '" + f.EmittedName() + "'"
	return []models.ColumnSpec{
		{
			Name:        names[0],
			GlueType:    "smallint",
			ParquetType: "INT32",
			Optional:    f.Optional,
			Comment:     comment,
		},
		{
			Name:        names[1],
			GlueType:    "tinyint",
			ParquetType: "INT32",
			Optional:    f.Optional,
			Comment:     comment,
		},
		{
			Name:        names[2],
			GlueType:    "tinyint",
			ParquetType: "INT32",
			Optional:    f.Optional,
			Comment:     comment,
		},
	}
}

// MapColumns converts all fields of a descriptor in declaration order.
func MapColumns(desc models.RecordDescriptor) ([]models.ColumnSpec, error) {
	var columns []models.ColumnSpec
	for _, f := range desc.Fields {
		cols, err := MapType(f)
		if err != nil {
			return nil, err
		}
		columns = append(columns, cols...)
	}
	return columns, nil
}
