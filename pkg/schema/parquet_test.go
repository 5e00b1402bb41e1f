package schema_test

import (
	"testing"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parquetGolden = `message analytics {
  REQUIRED INT32 client_time_year;
  REQUIRED INT32 client_time_month;
  REQUIRED INT32 client_time_day;
  REQUIRED BYTE_ARRAY client_id (UTF8);
  OPTIONAL BYTE_ARRAY user_id (UTF8);
  REQUIRED BYTE_ARRAY props (UTF8);
  REQUIRED BYTE_ARRAY name (UTF8);
}`

func TestBuildParquetSchema(t *testing.T) {
	desc := newGlueTestDescriptor()

	cols, err := schema.MapColumns(desc)
	require.NoError(t, err)

	out := schema.BuildParquetSchema("analytics", cols)
	assert.Equal(t, parquetGolden, out)
}

func TestBuildParquetSchemaTypes(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Sample",
		Fields: []models.FieldDescriptor{
			{Name: "byte", Type: models.TypeInt8},
			{Name: "long", Type: models.TypeInt64},
			{Name: "at", Type: models.TypeTimestamp},
			{Name: "ok", Type: models.TypeBool},
			{Name: "ratio", Type: models.TypeFloat32},
		},
	}

	cols, err := schema.MapColumns(desc)
	require.NoError(t, err)

	out := schema.BuildParquetSchema("sample", cols)
	assert.Equal(t, `message sample {
  REQUIRED INT32 byte;
  REQUIRED INT64 long;
  REQUIRED INT96 at;
  REQUIRED BOOLEAN ok;
  REQUIRED FLOAT ratio;
}`, out)
}

func TestBuildParquetSchemaEmpty(t *testing.T) {
	out := schema.BuildParquetSchema("empty", nil)
	assert.Equal(t, "message empty {\n}", out)
}
