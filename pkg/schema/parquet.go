package schema

import (
	"strings"

	"github.com/m-mizutani/glueschema/pkg/models"
)

// BuildParquetSchema renders the columnar storage schema of one record type
// as parquet message text. The column list is identical to the glue schema,
// so both artifacts stay 1:1. Output is byte-stable for identical input.
func BuildParquetSchema(tableName string, columns []models.ColumnSpec) string {
	var b strings.Builder

	b.WriteString("message " + tableName + " {\n")
	for _, col := range columns {
		b.WriteString("  ")
		if col.Optional {
			b.WriteString("OPTIONAL ")
		} else {
			b.WriteString("REQUIRED ")
		}
		b.WriteString(col.ParquetType)
		b.WriteString(" ")
		b.WriteString(col.Name)
		if col.UTF8 {
			b.WriteString(" (UTF8)")
		}
		b.WriteString(";\n")
	}
	b.WriteString("}")

	return b.String()
}
