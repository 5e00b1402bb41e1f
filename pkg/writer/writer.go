package writer

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
)

// S3Destination locates the table root on the object storage.
//
// Key Format:
// {prefix}{table}/{partition path prefix}{uuid}.parquet
type S3Destination struct {
	Region string
	Bucket string
	Prefix string
}

// ObjectLocation is one uploaded object with its partition values.
type ObjectLocation struct {
	Bucket          string
	Key             string
	PartitionValues []models.PartitionValue
	PartitionPath   string
}

// PartitionLocation returns the S3 URL of the partition directory, usable
// as ALTER TABLE location.
func (x ObjectLocation) PartitionLocation() string {
	return "s3://" + x.Bucket + "/" + x.PartitionPath
}

// ObjectWriter dumps record instances into per-partition parquet files and
// uploads them under the canonical partitioned path.
type ObjectWriter struct {
	table   *models.TableSchema
	dst     S3Destination
	newS3   adaptor.S3ClientFactory
	dumpers map[string]*ParquetDumper
}

// NewObjectWriter is a constructor of ObjectWriter
func NewObjectWriter(table *models.TableSchema, dst S3Destination, newS3 adaptor.S3ClientFactory) *ObjectWriter {
	return &ObjectWriter{
		table:   table,
		dst:     dst,
		newS3:   newS3,
		dumpers: map[string]*ParquetDumper{},
	}
}

// Write appends one record to the dumper of its partition
func (x *ObjectWriter) Write(record models.Record) error {
	prefix, err := schema.BuildPathPrefix(x.table.PartitionKeys, record)
	if err != nil {
		return err
	}

	d, ok := x.dumpers[prefix]
	if !ok {
		d, err = NewParquetDumper(x.table)
		if err != nil {
			return err
		}
		x.dumpers[prefix] = d
	}

	return d.Dump(record)
}

// Close flushes all dumpers and uploads their files. It returns locations
// of uploaded objects so that callers can register partitions.
func (x *ObjectWriter) Close() ([]ObjectLocation, error) {
	client := x.newS3(x.dst.Region)

	var locations []ObjectLocation
	for prefix, d := range x.dumpers {
		if err := d.Close(); err != nil {
			return nil, err
		}

		values, _, err := schema.ParsePathPrefix(prefix)
		if err != nil {
			return nil, err
		}

		partitionPath := x.dst.Prefix + x.table.TableName + "/" + prefix
		for _, filePath := range d.Files() {
			key := partitionPath + uuid.New().String() + ".parquet"
			if err := x.upload(client, filePath, key); err != nil {
				return nil, err
			}
			locations = append(locations, ObjectLocation{
				Bucket:          x.dst.Bucket,
				Key:             key,
				PartitionValues: values,
				PartitionPath:   partitionPath,
			})
		}

		if err := d.Delete(); err != nil {
			return nil, err
		}
	}

	x.dumpers = map[string]*ParquetDumper{}
	return locations, nil
}

func (x *ObjectWriter) upload(client adaptor.S3Client, filePath, key string) error {
	fd, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "Fail to open parquet file: %s", filePath)
	}
	defer fd.Close()

	_, err = client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(x.dst.Bucket),
		Key:    aws.String(key),
		Body:   fd,
	})
	if err != nil {
		return errors.Wrapf(err, "Fail to upload parquet file: s3://%s/%s", x.dst.Bucket, key)
	}

	return nil
}
