package writer

import (
	"bytes"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
)

// RawArchiver keeps original record instances next to the parquet files.
// Parquet flattens composite values to JSON text, the archive preserves
// them as-is for reprocessing after a schema change.
//
// Key Format:
// {prefix}{table}/raw/{partition path prefix}{uuid}.{ext}
type RawArchiver struct {
	table      *models.TableSchema
	dst        S3Destination
	newS3      adaptor.S3ClientFactory
	newEncoder adaptor.EncoderFactory
	buffers    map[string]*archiveBuffer
}

type archiveBuffer struct {
	buf bytes.Buffer
	enc adaptor.Encoder
}

// NewRawArchiver is a constructor of RawArchiver. newEncoder may be nil,
// then gzipped msgpack is used.
func NewRawArchiver(table *models.TableSchema, dst S3Destination, newS3 adaptor.S3ClientFactory, newEncoder adaptor.EncoderFactory) *RawArchiver {
	if newEncoder == nil {
		newEncoder = adaptor.NewMsgpackEncoder
	}

	return &RawArchiver{
		table:      table,
		dst:        dst,
		newS3:      newS3,
		newEncoder: newEncoder,
		buffers:    map[string]*archiveBuffer{},
	}
}

// Write appends one record to the archive of its partition
func (x *RawArchiver) Write(record models.Record) error {
	prefix, err := schema.BuildPathPrefix(x.table.PartitionKeys, record)
	if err != nil {
		return err
	}

	b, ok := x.buffers[prefix]
	if !ok {
		b = &archiveBuffer{}
		b.enc = x.newEncoder(&b.buf)
		x.buffers[prefix] = b
	}

	return b.enc.Encode(record)
}

// Close flushes the encoders and uploads one archive object per partition.
func (x *RawArchiver) Close() error {
	client := x.newS3(x.dst.Region)

	for prefix, b := range x.buffers {
		if err := b.enc.Close(); err != nil {
			return errors.Wrap(err, "Fail to close archive encoder")
		}

		key := x.dst.Prefix + x.table.TableName + "/raw/" + prefix + uuid.New().String() + "." + b.enc.Ext()
		input := &s3.PutObjectInput{
			Bucket: aws.String(x.dst.Bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(b.buf.Bytes()),
		}
		if enc := b.enc.ContentEncoding(); enc != "" {
			input.ContentEncoding = aws.String(enc)
		}

		if _, err := client.PutObject(input); err != nil {
			return errors.Wrapf(err, "Fail to upload archive: s3://%s/%s", x.dst.Bucket, key)
		}
	}

	x.buffers = map[string]*archiveBuffer{}
	return nil
}
