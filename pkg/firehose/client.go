package firehose

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	"github.com/aws/aws-sdk-go-v2/service/firehose/types"
)

// API is the subset of the Firehose client used by the record forwarder.
type API interface {
	PutRecord(
		ctx context.Context,
		params *firehose.PutRecordInput,
		optFns ...func(*firehose.Options),
	) (*firehose.PutRecordOutput, error)
}

// Client forwards verified webhook payloads to the durable record sink.
type Client struct {
	api API
}

// New creates a Client from an AWS config.
func New(cfg aws.Config) *Client {
	return &Client{api: firehose.NewFromConfig(cfg)}
}

// NewWithAPI creates a Client with a custom API, used in tests.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// PutRecord appends one raw record to the delivery stream.
func (c *Client) PutRecord(ctx context.Context, stream string, data []byte) error {
	_, err := c.api.PutRecord(ctx, &firehose.PutRecordInput{
		DeliveryStreamName: aws.String(stream),
		Record:             &types.Record{Data: data},
	})
	if err != nil {
		return fmt.Errorf("failed to put record to stream %s: %w", stream, err)
	}
	return nil
}
