package schema_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsDescriptor() models.RecordDescriptor {
	return models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_id", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex)},
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrIndex).Set(models.AttrDateIndex)},
			{Name: "session_id", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex)},
			{Name: "name", Type: models.TypeString},
		},
		Options: models.OutputOptions{PartitionCode: true},
	}
}

func TestExtractPartitionKeys(t *testing.T) {
	spec, err := schema.ExtractPartitionKeys(newAnalyticsDescriptor())
	require.NoError(t, err)
	require.Len(t, spec, 5)

	// Date segments come first even though client_id is declared before
	// the date index field.
	assert.Equal(t, models.PartitionKeyYear, spec[0].Kind)
	assert.Equal(t, "year", spec[0].Name)
	assert.Equal(t, "client_time", spec[0].Source)
	assert.Equal(t, models.PartitionKeyMonth, spec[1].Kind)
	assert.Equal(t, "month", spec[1].Name)
	assert.Equal(t, models.PartitionKeyDay, spec[2].Kind)
	assert.Equal(t, "day", spec[2].Name)

	assert.Equal(t, models.PartitionKeyField, spec[3].Kind)
	assert.Equal(t, "client_id", spec[3].Name)
	assert.Equal(t, models.PartitionKeyField, spec[4].Kind)
	assert.Equal(t, "session_id", spec[4].Name)
}

func TestExtractPartitionKeysIdempotent(t *testing.T) {
	desc := newAnalyticsDescriptor()

	spec1, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)
	spec2, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)

	assert.Equal(t, spec1, spec2)
}

func TestExtractPartitionKeysWithoutDateIndex(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_id", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex)},
			{Name: "name", Type: models.TypeString},
		},
		Options: models.OutputOptions{PartitionCode: true},
	}

	spec, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)
	require.Len(t, spec, 1)
	assert.Equal(t, "client_id", spec[0].Name)
}

func TestExtractPartitionKeysNoIndex(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "name", Type: models.TypeString},
		},
		Options: models.OutputOptions{PartitionCode: true},
	}

	_, err := schema.ExtractPartitionKeys(desc)
	require.Error(t, err)
	assert.Equal(t, models.ErrNoPartitionKeys, errors.Cause(err))
}

func TestExtractPartitionKeysNotRequested(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "name", Type: models.TypeString},
		},
	}

	spec, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)
	assert.Empty(t, spec)
}

func TestDecompose(t *testing.T) {
	ts := time.Date(2025, 12, 30, 23, 59, 59, 0, time.UTC)
	parts := schema.Decompose(ts)

	assert.Equal(t, int16(2025), parts.Year)
	assert.Equal(t, int8(12), parts.Month)
	assert.Equal(t, int8(30), parts.Day)
	assert.True(t, strings.HasPrefix(parts.RFC3339, "2025-12-30T"), parts.RFC3339)
}

func TestDecomposeOneBased(t *testing.T) {
	ts := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	parts := schema.Decompose(ts)

	assert.Equal(t, int8(1), parts.Month)
	assert.Equal(t, int8(1), parts.Day)
	assert.Equal(t, "2021-01-01T00:00:00Z", parts.RFC3339)
}

func TestExtractPartitionKeysReservedName(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
			{Name: "year", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex)},
		},
	}

	_, err := schema.ExtractPartitionKeys(desc)
	require.Error(t, err)
	assert.Equal(t, models.ErrDuplicateEmittedName, errors.Cause(err))
	assert.Contains(t, err.Error(), "year")

	// Without date segments the name is not reserved.
	desc.Fields = desc.Fields[1:]
	spec, err := schema.ExtractPartitionKeys(desc)
	require.NoError(t, err)
	require.Len(t, spec, 1)
	assert.Equal(t, "year", spec[0].Name)
}
