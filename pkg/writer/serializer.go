package writer

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
)

// SerializeJSON renders one record instance as a JSON object whose field
// order follows the emitted column order, so that serialized records align
// with the registered schema. The date index source field, if any, is
// written as RFC3339 text right before its derived year/month/day columns;
// the extraction mappings of the glue schema read that text form. Both
// forms come from a single decomposition of the source value.
//
// Values of JSON-attributed fields must be pre-serialized JSON text,
// missing values are emitted as null.
func SerializeJSON(table *models.TableSchema, record models.Record) ([]byte, error) {
	dateSrc := table.PartitionKeys.DateIndexSource()
	var parts *schema.DateParts

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeField := func(name string, v interface{}) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(name)
		if err != nil {
			return errors.Wrapf(err, "Fail to marshal field name '%s'", name)
		}
		buf.Write(key)
		buf.WriteByte(':')

		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "Fail to marshal value of '%s'", name)
		}
		buf.Write(raw)
		return nil
	}

	for _, col := range table.Columns {
		if dateSrc != "" && parts == nil && col.Name == dateSrc+"_year" {
			v, ok := record[dateSrc]
			if !ok {
				return nil, errors.Errorf("record has no value of date index field '%s'", dateSrc)
			}
			ts, ok := v.(time.Time)
			if !ok {
				return nil, errors.Errorf("date index field '%s' must be time.Time, got %T", dateSrc, v)
			}
			p := schema.Decompose(ts)
			parts = &p

			if err := writeField(dateSrc, parts.RFC3339); err != nil {
				return nil, err
			}
			if err := writeField(col.Name, parts.Year); err != nil {
				return nil, err
			}
			continue
		}

		if parts != nil {
			switch col.Name {
			case dateSrc + "_month":
				if err := writeField(col.Name, parts.Month); err != nil {
					return nil, err
				}
				continue
			case dateSrc + "_day":
				if err := writeField(col.Name, parts.Day); err != nil {
					return nil, err
				}
				continue
			}
		}

		if err := writeField(col.Name, record[col.Name]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
