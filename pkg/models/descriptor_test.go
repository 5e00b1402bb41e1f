package models_test

import (
	"testing"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDescriptorEmittedName(t *testing.T) {
	f := models.FieldDescriptor{Name: "strka", Type: models.TypeString}
	assert.Equal(t, "strka", f.EmittedName())

	f.Rename = "stroka"
	assert.Equal(t, "stroka", f.EmittedName())
}

func TestAttrSet(t *testing.T) {
	var attrs models.AttrSet
	assert.False(t, attrs.Has(models.AttrIndex))

	attrs = attrs.Set(models.AttrIndex).Set(models.AttrDateIndex)
	assert.True(t, attrs.Has(models.AttrIndex))
	assert.True(t, attrs.Has(models.AttrDateIndex))
	assert.False(t, attrs.Has(models.AttrJSON))
}

func TestRecordDescriptorValidate(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
			{Name: "client_id", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrIndex)},
		},
	}
	require.NoError(t, desc.Validate())
}

func TestRecordDescriptorValidateEmptyName(t *testing.T) {
	desc := models.RecordDescriptor{}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrEmptyRecordName, errors.Cause(err))
}

func TestRecordDescriptorValidateDuplicateName(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "extras", Rename: "extra", Type: models.TypeObject},
			{Name: "extra", Type: models.TypeString},
		},
	}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrDuplicateEmittedName, errors.Cause(err))
	assert.Contains(t, err.Error(), "extra")
}

func TestRecordDescriptorValidateConflictingAttrs(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "props", Type: models.TypeObject, Attrs: models.AttrSet(0).Set(models.AttrJSON).Set(models.AttrEnum)},
		},
	}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrConflictingAttributes, errors.Cause(err))
}

func TestRecordDescriptorValidateDoubleDateIndex(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
			{Name: "server_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
		},
	}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrInvalidDateIndex, errors.Cause(err))
}

func TestRecordDescriptorValidateDateIndexType(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeString, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
		},
	}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrInvalidDateIndex, errors.Cause(err))
}

func TestRecordDescriptorDateIndexField(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_id", Type: models.TypeString},
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
		},
	}

	f := desc.DateIndexField()
	require.NotNil(t, f)
	assert.Equal(t, "client_time", f.Name)

	desc.Fields = desc.Fields[:1]
	assert.Nil(t, desc.DateIndexField())
}

func TestRecordDescriptorValidateDerivedNameCollision(t *testing.T) {
	desc := models.RecordDescriptor{
		Name: "Analytics",
		Fields: []models.FieldDescriptor{
			{Name: "client_time", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)},
			{Name: "client_time_year", Type: models.TypeInt16},
		},
	}
	err := desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrDuplicateEmittedName, errors.Cause(err))
	assert.Contains(t, err.Error(), "client_time_year")

	// Declaration order must not matter.
	desc.Fields[0], desc.Fields[1] = desc.Fields[1], desc.Fields[0]
	err = desc.Validate()
	require.Error(t, err)
	assert.Equal(t, models.ErrDuplicateEmittedName, errors.Cause(err))
}

func TestFieldDescriptorDerivedColumnNames(t *testing.T) {
	f := models.FieldDescriptor{Name: "ts", Type: models.TypeTimestamp, Attrs: models.AttrSet(0).Set(models.AttrDateIndex)}
	assert.Equal(t, []string{"ts_year", "ts_month", "ts_day"}, f.DerivedColumnNames())

	f.Rename = "event_time"
	assert.Equal(t, []string{"event_time_year", "event_time_month", "event_time_day"}, f.DerivedColumnNames())

	assert.Nil(t, models.FieldDescriptor{Name: "ts", Type: models.TypeTimestamp}.DerivedColumnNames())
}
