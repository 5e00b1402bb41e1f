package writer_test

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/writer"
)

func newArchiveTestRecords() []models.Record {
	return []models.Record{
		{
			"client_time": time.Date(2025, 12, 30, 10, 0, 0, 0, time.UTC),
			"client_id":   "blue",
			"count":       int64(1),
			"props":       `{"key":"value"}`,
		},
		{
			"client_time": time.Date(2025, 12, 30, 11, 0, 0, 0, time.UTC),
			"client_id":   "blue",
			"count":       int64(2),
			"props":       "{}",
		},
	}
}

func TestRawArchiverJSON(t *testing.T) {
	table := newWriterTestTable(t)
	s3Mock := adaptor.NewS3Mock("test").(*adaptor.S3Mock)

	a := writer.NewRawArchiver(table, writer.S3Destination{
		Region: "ap-northeast-1",
		Bucket: "mybucket",
		Prefix: "logs/",
	}, func(region string) adaptor.S3Client { return s3Mock }, adaptor.NewJSONEncoder)

	for _, record := range newArchiveTestRecords() {
		require.NoError(t, a.Write(record))
	}
	require.NoError(t, a.Close())

	keys := s3Mock.Keys("mybucket")
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0],
		"logs/analytics/raw/year=2025/month=12/day=30/client_id=blue/"), keys[0])
	assert.True(t, strings.HasSuffix(keys[0], ".json"), keys[0])

	output, err := s3Mock.GetObject(&s3.GetObjectInput{
		Bucket: aws.String("mybucket"),
		Key:    aws.String(keys[0]),
	})
	require.NoError(t, err)

	scanner := bufio.NewScanner(output.Body)
	var lines []map[string]interface{}
	for scanner.Scan() {
		var v map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &v))
		lines = append(lines, v)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "blue", lines[0]["client_id"])
	assert.Equal(t, `{"key":"value"}`, lines[0]["props"])
}

func TestRawArchiverMsgpackDefault(t *testing.T) {
	table := newWriterTestTable(t)
	s3Mock := adaptor.NewS3Mock("test").(*adaptor.S3Mock)

	a := writer.NewRawArchiver(table, writer.S3Destination{
		Region: "ap-northeast-1",
		Bucket: "mybucket",
		Prefix: "logs/",
	}, func(region string) adaptor.S3Client { return s3Mock }, nil)

	for _, record := range newArchiveTestRecords() {
		require.NoError(t, a.Write(record))
	}
	require.NoError(t, a.Close())

	keys := s3Mock.Keys("mybucket")
	require.Len(t, keys, 1)
	assert.True(t, strings.HasSuffix(keys[0], ".msg.gz"), keys[0])

	output, err := s3Mock.GetObject(&s3.GetObjectInput{
		Bucket: aws.String("mybucket"),
		Key:    aws.String(keys[0]),
	})
	require.NoError(t, err)

	var raw bytes.Buffer
	gr, err := gzip.NewReader(output.Body)
	require.NoError(t, err)
	_, err = raw.ReadFrom(gr)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(&raw)
	var first map[string]interface{}
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "blue", first["client_id"])
}

func TestRawArchiverSplitsPartitions(t *testing.T) {
	table := newWriterTestTable(t)
	s3Mock := adaptor.NewS3Mock("test").(*adaptor.S3Mock)

	a := writer.NewRawArchiver(table, writer.S3Destination{
		Region: "ap-northeast-1",
		Bucket: "mybucket",
		Prefix: "logs/",
	}, func(region string) adaptor.S3Client { return s3Mock }, adaptor.NewJSONEncoder)

	records := newArchiveTestRecords()
	records = append(records, models.Record{
		"client_time": time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		"client_id":   "orange",
		"count":       int64(3),
		"props":       "{}",
	})
	for _, record := range records {
		require.NoError(t, a.Write(record))
	}
	require.NoError(t, a.Close())

	assert.Len(t, s3Mock.Keys("mybucket"), 2)
}
