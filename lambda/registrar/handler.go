package main

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/glueschema/pkg/handler"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Handler registers table partitions for created objects. It is exported
// for testing.
func Handler(args handler.Arguments) error {
	records, err := args.DecapS3Event()
	if err != nil {
		return err
	}

	catalogSvc := args.CatalogService()

	for _, record := range records {
		bucket := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return errors.Wrapf(err, "Fail to unescape object key: %s", record.S3.Object.Key)
		}

		tableName, values, err := parseObjectKey(args.S3Prefix, key)
		if err != nil {
			// Objects outside the partition layout (e.g. query results)
			// are not an error.
			logger.WithFields(logrus.Fields{"key": key, "reason": err}).Warn("Skip object")
			continue
		}

		location := partitionLocation(bucket, args.S3Prefix, tableName, values)
		logger.WithFields(logrus.Fields{
			"table":    tableName,
			"location": location,
		}).Info("Register partition")

		if err := catalogSvc.RegisterPartition(tableName, values, location); err != nil {
			return errors.Wrap(err, "Fail to create partition")
		}
	}

	return nil
}

// parseObjectKey splits an object key into table name and partition values.
//
// Key Format:
// {prefix}{table}/{partition segments}/{object name}
func parseObjectKey(prefix, key string) (string, []models.PartitionValue, error) {
	if !strings.HasPrefix(key, prefix) {
		return "", nil, errors.Errorf("Prefix is not matched: %s %s", prefix, key)
	}

	suffixKey := key[len(prefix):]
	arr := strings.SplitN(suffixKey, "/", 2)
	if len(arr) != 2 || arr[0] == "" {
		return "", nil, errors.Errorf("No table name in key: %s", key)
	}
	tableName := arr[0]

	values, _, err := schema.ParsePathPrefix(arr[1])
	if err != nil {
		return "", nil, err
	}

	return tableName, values, nil
}

func partitionLocation(bucket, prefix, tableName string, values []models.PartitionValue) string {
	var segments []string
	for _, v := range values {
		segments = append(segments, v.Name+"="+v.Value)
	}

	return "s3://" + bucket + "/" + prefix + tableName + "/" + strings.Join(segments, "/") + "/"
}
