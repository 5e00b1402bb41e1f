package writer

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/m-mizutani/glueschema/internal"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

var logger = internal.Logger

// DumperParquetSizeLimit specifies maximum parquet file size.
// When hitting the size, refresh (close & open another file).
var DumperParquetSizeLimit = 128 * 1000 * 1000 // 128MB

const (
	// About parquet format: https://parquet.apache.org/documentation/latest/
	parquetRowGroupSize = 16 * 1024 * 1024 // 16M
)

// MetadataTags converts emitted columns to parquet writer metadata. The
// tag list pairs 1:1 with the generated parquet schema text.
func MetadataTags(columns []models.ColumnSpec) []string {
	tags := make([]string, 0, len(columns))
	for _, col := range columns {
		tag := fmt.Sprintf("name=%s, type=%s", col.Name, col.ParquetType)
		if col.UTF8 {
			tag = fmt.Sprintf("name=%s, type=UTF8, encoding=PLAIN_DICTIONARY", col.Name)
		}
		if col.Optional {
			tag += ", repetitiontype=OPTIONAL"
		}
		tags = append(tags, tag)
	}
	return tags
}

// ParquetDumper writes record instances to local parquet files per the
// generated schema. Files rotate when the estimated size hits
// DumperParquetSizeLimit.
type ParquetDumper struct {
	table    *models.TableSchema
	files    []*parquetFile
	current  *parquetFile
	dataSize int
}

type parquetFile struct {
	filePath string
	pw       *writer.CSVWriter
	fw       source.ParquetFile
}

// NewParquetDumper is a constructor of ParquetDumper
func NewParquetDumper(table *models.TableSchema) (*ParquetDumper, error) {
	d := &ParquetDumper{table: table}
	if err := d.open(); err != nil {
		return nil, err
	}
	return d, nil
}

func (x *ParquetDumper) open() error {
	fd, err := ioutil.TempFile("", "*.parquet")
	if err != nil {
		return errors.Wrap(err, "Fail to create a temp parquet file")
	}
	fd.Close()
	filePath := fd.Name()

	logger.WithFields(logrus.Fields{
		"path":  filePath,
		"table": x.table.TableName,
	}).Debug("Open dumper")

	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return errors.Wrap(err, "Fail to create a parquet file")
	}

	pw, err := writer.NewCSVWriter(MetadataTags(x.table.Columns), fw, 4)
	if err != nil {
		return errors.Wrap(err, "Fail to create parquet writer")
	}

	pw.RowGroupSize = parquetRowGroupSize
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	x.current = &parquetFile{
		filePath: filePath,
		pw:       pw,
		fw:       fw,
	}
	x.files = append(x.files, x.current)
	return nil
}

func (x *ParquetDumper) refresh(dataSize int) error {
	if x.dataSize+dataSize > DumperParquetSizeLimit {
		if err := x.closeCurrent(); err != nil {
			return err
		}
		if err := x.open(); err != nil {
			return err
		}
		x.dataSize = 0
	}
	x.dataSize += dataSize
	return nil
}

// Dump writes one record instance as a parquet row
func (x *ParquetDumper) Dump(record models.Record) error {
	row, size, err := x.toRow(record)
	if err != nil {
		return err
	}

	if err := x.refresh(size); err != nil {
		return err
	}

	if err := x.current.pw.Write(row); err != nil {
		return errors.Wrapf(err, "Fail to write record to parquet: %v", record)
	}

	return nil
}

func (x *ParquetDumper) toRow(record models.Record) ([]interface{}, int, error) {
	dateSrc := x.table.PartitionKeys.DateIndexSource()
	var parts *schema.DateParts
	if dateSrc != "" {
		v, ok := record[dateSrc].(time.Time)
		if !ok {
			return nil, 0, errors.Errorf("date index field '%s' must be time.Time", dateSrc)
		}
		p := schema.Decompose(v)
		parts = &p
	}

	row := make([]interface{}, 0, len(x.table.Columns))
	size := 0
	for _, col := range x.table.Columns {
		var v interface{}
		if parts != nil {
			switch col.Name {
			case dateSrc + "_year":
				v = parts.Year
			case dateSrc + "_month":
				v = parts.Month
			case dateSrc + "_day":
				v = parts.Day
			default:
				v = record[col.Name]
			}
		} else {
			v = record[col.Name]
		}

		cell, err := columnValue(col, v)
		if err != nil {
			return nil, 0, err
		}
		row = append(row, cell)

		if s, ok := cell.(string); ok {
			size += len(s)
		} else {
			size += 8
		}
	}

	return row, size, nil
}

func (x *ParquetDumper) closeCurrent() error {
	if x.current == nil {
		return nil
	}
	if err := x.current.pw.WriteStop(); err != nil {
		return errors.Wrap(err, "Fail to stop parquet writer")
	}
	if err := x.current.fw.Close(); err != nil {
		return errors.Wrap(err, "Fail to close parquet file")
	}
	x.current = nil
	return nil
}

// Close flushes and closes the current file. Written file paths stay
// available via Files.
func (x *ParquetDumper) Close() error {
	return x.closeCurrent()
}

// Files returns paths of written parquet files
func (x *ParquetDumper) Files() []string {
	var paths []string
	for _, f := range x.files {
		paths = append(paths, f.filePath)
	}
	return paths
}

// Delete removes all written temp files
func (x *ParquetDumper) Delete() error {
	for _, f := range x.files {
		if err := os.Remove(f.filePath); err != nil {
			return errors.Wrapf(err, "Fail to remove parquet file: %s", f.filePath)
		}
	}
	x.files = nil
	return nil
}

// columnValue coerces a record value to the physical cell type of the
// column. Missing values of optional columns become null cells.
func columnValue(col models.ColumnSpec, v interface{}) (interface{}, error) {
	if v == nil {
		if col.Optional {
			return nil, nil
		}
		return nil, errors.Errorf("missing value of required column '%s'", col.Name)
	}

	switch col.ParquetType {
	case "BOOLEAN":
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Errorf("column '%s' requires bool, got %T", col.Name, v)
		}
		return b, nil
	case "INT32":
		n, err := toInt64(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", col.Name)
		}
		return int32(n), nil
	case "INT64":
		n, err := toInt64(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", col.Name)
		}
		return n, nil
	case "FLOAT":
		f, err := toFloat64(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", col.Name)
		}
		return float32(f), nil
	case "DOUBLE":
		f, err := toFloat64(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", col.Name)
		}
		return f, nil
	case "INT96":
		ts, ok := v.(time.Time)
		if !ok {
			return nil, errors.Errorf("column '%s' requires time.Time, got %T", col.Name, v)
		}
		return timeToINT96(ts), nil
	default: // BYTE_ARRAY
		s, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("column '%s' requires string, got %T", col.Name, v)
		}
		return s, nil
	}
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, errors.Errorf("not an integer: %T", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	default:
		return 0, errors.Errorf("not a float: %T", v)
	}
}

const julianUnixEpoch = 2440588

// timeToINT96 encodes a timestamp to the 12 byte INT96 layout of the Hive
// serializer: nanoseconds of day (little endian, 8 bytes) followed by the
// Julian day number (little endian, 4 bytes).
func timeToINT96(t time.Time) string {
	t = t.UTC()
	secs := t.Unix()
	days := secs / 86400
	rem := secs % 86400
	// Go truncates toward zero, the day boundary needs floored division
	// for timestamps before the unix epoch.
	if rem < 0 {
		days--
		rem += 86400
	}
	nanos := uint64(rem)*uint64(time.Second) + uint64(t.Nanosecond())

	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], nanos)
	binary.LittleEndian.PutUint32(buf[8:], uint32(days+julianUnixEpoch))
	return string(buf[:])
}
