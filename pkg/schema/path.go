package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

// BuildPathPrefix renders the storage path prefix of one record instance.
// Segments follow the partition key specification exactly, as
// "name=value" joined by "/", and the result always ends with "/" so that
// callers can append an object name directly.
//
// Key Format:
// year={YYYY}/month={MM}/day={DD}/{field}={value}/...
func BuildPathPrefix(spec models.PartitionKeySpec, record models.Record) (string, error) {
	var segments []string
	var dateParts *DateParts

	for _, p := range spec {
		if p.IsDatePart() {
			if dateParts == nil {
				v, ok := record[p.Source]
				if !ok {
					return "", errors.Errorf("record has no value of date index field '%s'", p.Source)
				}
				ts, ok := v.(time.Time)
				if !ok {
					return "", errors.Errorf("date index field '%s' must be time.Time, got %T", p.Source, v)
				}
				parts := Decompose(ts)
				dateParts = &parts
			}

			switch p.Kind {
			case models.PartitionKeyYear:
				segments = append(segments, fmt.Sprintf("%s=%d", p.Name, dateParts.Year))
			case models.PartitionKeyMonth:
				segments = append(segments, fmt.Sprintf("%s=%02d", p.Name, dateParts.Month))
			case models.PartitionKeyDay:
				segments = append(segments, fmt.Sprintf("%s=%02d", p.Name, dateParts.Day))
			}
			continue
		}

		v, ok := record[p.Source]
		if !ok {
			return "", errors.Errorf("record has no value of partition key '%s'", p.Source)
		}
		segments = append(segments, p.Name+"="+renderValue(v))
	}

	if len(segments) == 0 {
		return "", errors.Wrap(models.ErrNoPartitionKeys, "Fail to build path prefix")
	}

	return strings.Join(segments, "/") + "/", nil
}

// renderValue converts a partition value to its path form. Strings pass
// through verbatim, other scalars use their canonical decimal/text form.
func renderValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ValidPathPrefix returns true if every partition value of the record is
// present and renders to a non-empty segment. An empty segment would break
// partition discovery of the path.
func ValidPathPrefix(spec models.PartitionKeySpec, record models.Record) bool {
	prefix, err := BuildPathPrefix(spec, record)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(strings.TrimSuffix(prefix, "/"), "/") {
		kv := strings.SplitN(seg, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return false
		}
	}
	return true
}

// ParsePathPrefix parses leading "name=value" segments of an object key and
// returns them with the remainder (the object name part). The segment order
// is preserved.
func ParsePathPrefix(key string) ([]models.PartitionValue, string, error) {
	var values []models.PartitionValue

	arr := strings.Split(key, "/")
	idx := 0
	for ; idx < len(arr); idx++ {
		kv := strings.SplitN(arr[idx], "=", 2)
		if len(kv) != 2 {
			break
		}
		if kv[0] == "" {
			return nil, "", errors.Errorf("Invalid partition segment: %s", arr[idx])
		}
		values = append(values, models.PartitionValue{Name: kv[0], Value: kv[1]})
	}

	if len(values) == 0 {
		return nil, "", errors.Errorf("No partition segment in key: %s", key)
	}

	return values, strings.Join(arr[idx:], "/"), nil
}
