package schema_test

import (
	"testing"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGlueTestDescriptor() models.RecordDescriptor {
	return models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrIndex).Set(models.AttrDateIndex), Comment: "Event time in client device"},
			{Name: "client_id", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex), Comment: "Index key"},
			{Name: "user_id", Type: models.TypeString, Optional: true},
			{Name: "props", Type: models.TypeObject},
			{Name: "name", Type: models.TypeString},
		},
		Options: models.OutputOptions{GlueSchema: true, PartitionCode: true},
	}
}

const glueGolden = `{
  "name": "analytics",
  "partition_keys": [
    {
      "name": "year",
      "type": "smallint",
      "comment": "Extracted from 'client_time'",
      "mapping": "(.client_time|split(\"-\")[0])"
    },
    {
      "name": "month",
      "type": "tinyint",
      "comment": "Extracted from 'client_time'",
      "mapping": "(.client_time|split(\"-\")[1])"
    },
    {
      "name": "day",
      "type": "tinyint",
      "comment": "Extracted from 'client_time'",
      "mapping": "(.client_time|split(\"-\")[2]|split(\"T\")[0])"
    },
    {
      "name": "client_id",
      "type": "string",
      "comment": "Extracted from 'client_id'",
      "mapping": ".client_id"
    }
  ],
  "columns": [
    {
      "name": "client_time_year",
      "type": "smallint",
      "comment": "Extracted from 'client_time'"
    },
    {
      "name": "client_time_month",
      "type": "tinyint",
      "comment": "Extracted from 'client_time'"
    },
    {
      "name": "client_time_day",
      "type": "tinyint",
      "comment": "Extracted from 'client_time'"
    },
    {
      "name": "client_id",
      "type": "string",
      "comment": "Index key"
    },
    {
      "name": "user_id",
      "type": "string",
      "comment": ""
    },
    {
      "name": "props",
      "type": "string",
      "comment": ""
    },
    {
      "name": "name",
      "type": "string",
      "comment": ""
    }
  ]
}`

func TestBuildGlueSchema(t *testing.T) {
	desc := newGlueTestDescriptor()

	cols, err := schema.MapColumns(desc)
	require.NoError(t, err)
	keys, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)

	out, err := schema.BuildGlueSchema("analytics", cols, keys)
	require.NoError(t, err)
	assert.Equal(t, glueGolden, out)
}

func TestBuildGlueSchemaStable(t *testing.T) {
	desc := newGlueTestDescriptor()

	cols, err := schema.MapColumns(desc)
	require.NoError(t, err)
	keys, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)

	out1, err := schema.BuildGlueSchema("analytics", cols, keys)
	require.NoError(t, err)
	out2, err := schema.BuildGlueSchema("analytics", cols, keys)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestBuildGlueSchemaColumnCount(t *testing.T) {
	// Without a date index field the column count equals the field count.
	desc := models.RecordDescriptor{
		Name: "Metrics",
		Fields: []models.FieldDescriptor{
			{Name: "value", Type: models.TypeFloat64},
			{Name: "unit", Type: models.TypeString},
			{Name: "count", Type: models.TypeInt64},
		},
	}

	cols, err := schema.MapColumns(desc)
	require.NoError(t, err)
	require.Len(t, cols, len(desc.Fields))

	out, err := schema.BuildGlueSchema("metrics", cols, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "value"`)
	assert.Contains(t, out, `"partition_keys": []`)
}

func TestBuildGlueSchemaUnknownPartitionSource(t *testing.T) {
	keys := models.PartitionKeySpec{
		{Kind: models.PartitionKeyField, Name: "missing", Source: "missing"},
	}
	_, err := schema.BuildGlueSchema("analytics", nil, keys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no emitted column")
}
