package schema

import (
	"time"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

// Partition segment names of a date index field. They are distinct from the
// derived data columns (<field>_year etc.), so names never collide.
const (
	partitionNameYear  = "year"
	partitionNameMonth = "month"
	partitionNameDay   = "day"
)

// ExtractPartitionKeys scans fields in declaration order and builds the
// partition key specification. The date index, if any, always contributes
// (year, month, day) before any other entry because storage layout is
// time-first. Index-flagged fields follow in declaration order.
//
// The result is a pure function of the descriptor and is cached by Generate;
// repeated calls return equal specs.
func ExtractPartitionKeys(desc models.RecordDescriptor) (models.PartitionKeySpec, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	var spec models.PartitionKeySpec

	dateField := desc.DateIndexField()
	if dateField != nil {
		src := dateField.EmittedName()
		spec = append(spec,
			models.PartitionKey{Kind: models.PartitionKeyYear, Name: partitionNameYear, Source: src},
			models.PartitionKey{Kind: models.PartitionKeyMonth, Name: partitionNameMonth, Source: src},
			models.PartitionKey{Kind: models.PartitionKeyDay, Name: partitionNameDay, Source: src},
		)
	}

	for _, f := range desc.Fields {
		if !f.Attrs.Has(models.AttrIndex) || f.Attrs.Has(models.AttrDateIndex) {
			continue
		}
		name := f.EmittedName()

		// Date segments claim the year/month/day key names, an index
		// field with one of those names would emit a duplicate key.
		if dateField != nil {
			switch name {
			case partitionNameYear, partitionNameMonth, partitionNameDay:
				return nil, errors.Wrapf(models.ErrDuplicateEmittedName, "partition key '%s'", name)
			}
		}

		spec = append(spec, models.PartitionKey{
			Kind:   models.PartitionKeyField,
			Name:   name,
			Source: name,
		})
	}

	if desc.Options.PartitionCode && len(spec) == 0 {
		return nil, errors.Wrapf(models.ErrNoPartitionKeys, "record '%s'", desc.Name)
	}

	return spec, nil
}

// DateParts is the decomposition of one timestamp value. Year/Month/Day
// match the derived column types and RFC3339 is the text form of the same
// source value. All of them come from a single read of the source.
type DateParts struct {
	Year    int16
	Month   int8
	Day     int8
	RFC3339 string
}

// Decompose splits a timestamp into date segments and its RFC3339 text.
func Decompose(ts time.Time) DateParts {
	year, month, day := ts.Date()
	return DateParts{
		Year:    int16(year),
		Month:   int8(month),
		Day:     int8(day),
		RFC3339: ts.Format(time.RFC3339),
	}
}
