package writer

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/firehose"
	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

// firehoseBatchLimit is the hard limit of PutRecordBatch
const firehoseBatchLimit = 500

// DeliveryService sends serialized records to a Kinesis Firehose delivery
// stream. The stream side deserializes the newline-delimited JSON per the
// registered glue schema and extracts partition values via the schema's
// mapping expressions.
type DeliveryService struct {
	region      string
	streamName  string
	newFirehose adaptor.FirehoseClientFactory
}

// NewDeliveryService is a constructor of DeliveryService
func NewDeliveryService(region, streamName string, newFirehose adaptor.FirehoseClientFactory) *DeliveryService {
	return &DeliveryService{
		region:      region,
		streamName:  streamName,
		newFirehose: newFirehose,
	}
}

// PutRecords serializes record instances in emitted column order and sends
// them to the delivery stream in batches.
func (x *DeliveryService) PutRecords(table *models.TableSchema, records []models.Record) error {
	client := x.newFirehose(x.region)

	var batch []*firehose.Record
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		output, err := client.PutRecordBatch(&firehose.PutRecordBatchInput{
			DeliveryStreamName: aws.String(x.streamName),
			Records:            batch,
		})
		if err != nil {
			return errors.Wrapf(err, "Fail to put %d records to %s", len(batch), x.streamName)
		}
		if n := aws.Int64Value(output.FailedPutCount); n > 0 {
			return errors.Errorf("%d records are not delivered to %s", n, x.streamName)
		}

		batch = nil
		return nil
	}

	for _, record := range records {
		raw, err := SerializeJSON(table, record)
		if err != nil {
			return err
		}
		raw = append(raw, '\n')

		batch = append(batch, &firehose.Record{Data: raw})
		if len(batch) >= firehoseBatchLimit {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}
