package models

import "github.com/pkg/errors"

// Structural validation errors of schema generation. All of them indicate
// an authoring mistake in the record descriptor and are never retried.
var (
	// ErrEmptyRecordName is returned when the record type name is empty.
	ErrEmptyRecordName = errors.New("record name must not be empty")
	// ErrInvalidDateIndex is returned when more than one field has a date
	// index or the field is not a timestamp.
	ErrInvalidDateIndex = errors.New("date index requires exactly one timestamp field")
	// ErrConflictingAttributes is returned when json and enum attributes
	// are set on the same field.
	ErrConflictingAttributes = errors.New("json and enum attributes are exclusive")
	// ErrNoPartitionKeys is returned when partition code is requested but
	// no field has index or date index attribute.
	ErrNoPartitionKeys = errors.New("no index field for partition keys")
	// ErrDuplicateEmittedName is returned when two fields resolve to the
	// same emitted column name.
	ErrDuplicateEmittedName = errors.New("emitted field name is duplicated")
)

func wrapFieldError(err error, name string) error {
	return errors.Wrapf(err, "field '%s'", name)
}
