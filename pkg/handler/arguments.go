package handler

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/internal/repository"
	"github.com/m-mizutani/glueschema/pkg/catalog"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/writer"
	"github.com/pkg/errors"
)

// Arguments has environment variables, Event record and adaptor
type Arguments struct {
	EnvVars
	Event interface{}

	NewAthena     adaptor.AthenaClientFactory    `json:"-"`
	NewS3         adaptor.S3ClientFactory        `json:"-"`
	PartitionRepo repository.PartitionRepository `json:"-"`
}

// BindEvent directly decode event data and unmarshal to ev object.
func (x *Arguments) BindEvent(ev interface{}) error {
	raw, err := json.Marshal(x.Event)
	if err != nil {
		Logger.WithField("event", x.Event).Error("json.Marshal")
		return errors.Wrap(err, "Failed to marshal lambda event in BindEvent")
	}

	if err := json.Unmarshal(raw, ev); err != nil {
		Logger.WithField("raw", string(raw)).Error("json.Unmarshal")
		return errors.Wrap(err, "Failed json.Unmarshal in BindEvent")
	}

	return nil
}

// DecapS3Event decapslates object records of S3 event
func (x *Arguments) DecapS3Event() ([]events.S3EventRecord, error) {
	var s3Event events.S3Event
	if err := x.BindEvent(&s3Event); err != nil {
		return nil, err
	}

	return s3Event.Records, nil
}

// CatalogService provides catalog.Service with Athena adaptor and
// partition repository (DynamoDB)
func (x *Arguments) CatalogService() *catalog.Service {
	repo := x.PartitionRepo
	if repo == nil {
		repo = repository.NewPartitionDynamoDB(x.AwsRegion, x.MetaTableName)
	}

	return catalog.New(x.AwsRegion, x.AthenaDBName, x.AthenaOutputPath(), x.newAthena(), repo)
}

// ObjectWriter provides writer.ObjectWriter targeting the configured
// bucket. The table root follows S3Prefix.
func (x *Arguments) ObjectWriter(table *models.TableSchema) *writer.ObjectWriter {
	dst := writer.S3Destination{
		Region: x.AwsRegion,
		Bucket: x.S3Bucket,
		Prefix: x.S3Prefix,
	}
	return writer.NewObjectWriter(table, dst, x.newS3())
}

func (x *Arguments) newAthena() adaptor.AthenaClientFactory {
	if x.NewAthena != nil {
		return x.NewAthena
	}
	return adaptor.NewAthenaClient
}

func (x *Arguments) newS3() adaptor.S3ClientFactory {
	if x.NewS3 != nil {
		return x.NewS3
	}
	return adaptor.NewS3Client
}
