package catalog

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/athena"
	"github.com/m-mizutani/glueschema/internal"
	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/internal/repository"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// Service registers generated schemas and partitions with the metadata
// catalog via Athena DDL.
type Service struct {
	region     string
	dbName     string
	outputPath string

	newAthena adaptor.AthenaClientFactory
	repo      repository.PartitionRepository

	// WaitQueryResult makes Execute poll the query state until it leaves
	// RUNNING. Registration DDL is usually fire-and-forget.
	WaitQueryResult bool
}

// New is a constructor of catalog Service. outputPath is the S3 URL for
// Athena query results.
func New(region, dbName, outputPath string, newAthena adaptor.AthenaClientFactory, repo repository.PartitionRepository) *Service {
	return &Service{
		region:     region,
		dbName:     dbName,
		outputPath: outputPath,
		newAthena:  newAthena,
		repo:       repo,
	}
}

// CreateTable registers the table of a generated schema. location is the
// S3 URL of the table root.
func (x *Service) CreateTable(table *models.TableSchema, location string) error {
	sql, err := CreateTableQuery(x.dbName, table, location)
	if err != nil {
		return err
	}

	return x.execute(sql)
}

// RegisterPartition adds one partition of the table unless it is already
// registered. location is the S3 URL of the partition directory.
func (x *Service) RegisterPartition(tableName string, values []models.PartitionValue, location string) error {
	if has, err := x.repo.HeadPartition(location); err != nil {
		return err
	} else if has {
		return nil // Nothing to do
	}

	sql, err := AddPartitionQuery(x.dbName, tableName, values, location)
	if err != nil {
		return err
	}

	if err := x.execute(sql); err != nil {
		return err
	}

	return x.repo.PutPartition(location)
}

func (x *Service) execute(sql string) error {
	client := x.newAthena(x.region)

	input := &athena.StartQueryExecutionInput{
		QueryString: aws.String(sql),
		ResultConfiguration: &athena.ResultConfiguration{
			OutputLocation: &x.outputPath,
		},
	}

	logger.WithField("input", input).Info("Athena Query")

	output, err := client.StartQueryExecution(input)
	if err != nil {
		return errors.Wrap(err, "Fail to execute a DDL query")
	}

	if !x.WaitQueryResult {
		return nil
	}

	for {
		status, err := client.GetQueryExecution(&athena.GetQueryExecutionInput{
			QueryExecutionId: output.QueryExecutionId,
		})
		if err != nil {
			return errors.Wrap(err, "Fail to get an execution result")
		}

		state := aws.StringValue(status.QueryExecution.Status.State)
		if state == athena.QueryExecutionStateRunning || state == athena.QueryExecutionStateQueued {
			logger.WithField("output", status).Debug("Waiting...")
			time.Sleep(time.Second * 3)
			continue
		}

		logger.WithFields(logrus.Fields{"state": state, "sql": sql}).Debug("done")
		if state != athena.QueryExecutionStateSucceeded {
			return errors.Errorf("query failed with state %s", state)
		}
		return nil
	}
}
