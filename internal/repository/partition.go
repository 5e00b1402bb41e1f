package repository

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/guregu/dynamo"
	"github.com/pkg/errors"
)

// PartitionRepository remembers registered table partitions to avoid
// issuing the same DDL twice.
type PartitionRepository interface {
	HeadPartition(partitionKey string) (bool, error)
	PutPartition(partitionKey string) error
}

// PartitionDynamoDB is DynamoDB implementation of PartitionRepository
type PartitionDynamoDB struct {
	table dynamo.Table
	ttl   time.Duration
}

type partitionRecord struct {
	ExpiresAt int64  `dynamo:"expires_at"`
	PKey      string `dynamo:"pk"`
	SKey      string `dynamo:"sk"`
}

// NewPartitionDynamoDB is a constructor of PartitionDynamoDB
func NewPartitionDynamoDB(region, tableName string) *PartitionDynamoDB {
	db := dynamo.New(session.New(), &aws.Config{Region: aws.String(region)})

	return &PartitionDynamoDB{
		table: db.Table(tableName),
		ttl:   time.Hour * 24 * 30,
	}
}

func toPartitionKey(partition string) string {
	return "partition:" + partition
}

// HeadPartition checks if the partition is already registered
func (x *PartitionDynamoDB) HeadPartition(partitionKey string) (bool, error) {
	var result partitionRecord
	pkey := toPartitionKey(partitionKey)
	if err := x.table.Get("pk", pkey).Range("sk", dynamo.Equal, "@").One(&result); err != nil {
		if err == dynamo.ErrNotFound {
			return false, nil
		}
		return false, errors.Wrapf(err, "Fail to get partition key: %s", pkey)
	}

	return true, nil
}

// PutPartition marks the partition as registered
func (x *PartitionDynamoDB) PutPartition(partitionKey string) error {
	now := time.Now().UTC()
	record := partitionRecord{
		ExpiresAt: now.Add(x.ttl).Unix(),
		PKey:      toPartitionKey(partitionKey),
		SKey:      "@",
	}

	if err := x.table.Put(record).Run(); err != nil {
		return errors.Wrapf(err, "Fail to put partition key: %s", record.PKey)
	}

	return nil
}

// PartitionMock is on memory PartitionRepository for testing
type PartitionMock struct {
	Partitions map[string]bool
}

// NewPartitionMock is constructor of PartitionMock
func NewPartitionMock() *PartitionMock {
	return &PartitionMock{Partitions: map[string]bool{}}
}

// HeadPartition of PartitionMock reads on memory map
func (x *PartitionMock) HeadPartition(partitionKey string) (bool, error) {
	return x.Partitions[partitionKey], nil
}

// PutPartition of PartitionMock writes on memory map
func (x *PartitionMock) PutPartition(partitionKey string) error {
	x.Partitions[partitionKey] = true
	return nil
}
