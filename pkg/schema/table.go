package schema

import (
	"strings"

	"github.com/m-mizutani/glueschema/pkg/models"
)

// DeriveTableName converts a record type name to its canonical table name.
// Only lower-casing is applied, no word splitting. It never fails, an empty
// name stays empty.
func DeriveTableName(recordName string) string {
	return strings.ToLower(recordName)
}

// Generate builds all schema artifacts of one record type selected by its
// output options. The returned bundle is immutable and safe for concurrent
// reads; callers should generate once per type and reuse it for every
// record instance. No partial artifact is produced on failure.
func Generate(desc models.RecordDescriptor) (*models.TableSchema, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	columns, err := MapColumns(desc)
	if err != nil {
		return nil, err
	}

	partitions, err := ExtractPartitionKeys(desc)
	if err != nil {
		return nil, err
	}

	table := &models.TableSchema{
		TableName:     DeriveTableName(desc.Name),
		Columns:       columns,
		PartitionKeys: partitions,
	}

	if desc.Options.GlueSchema {
		glue, err := BuildGlueSchema(table.TableName, columns, partitions)
		if err != nil {
			return nil, err
		}
		table.GlueSchema = glue
	}

	if desc.Options.ParquetSchema {
		table.ParquetSchema = BuildParquetSchema(table.TableName, columns)
	}

	return table, nil
}
