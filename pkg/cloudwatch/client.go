package cloudwatch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"dora-metrics-collector/internal/model"
)

// Emitter writes metric data points to CloudWatch. It is the only sink the
// engines emit to; retry/timeout policy is left to the SDK.
type Emitter struct {
	api API
}

// New creates an Emitter from an AWS config.
func New(cfg aws.Config) *Emitter {
	return &Emitter{api: cloudwatch.NewFromConfig(cfg)}
}

// NewWithAPI creates an Emitter with a custom API, used in tests.
func NewWithAPI(api API) *Emitter {
	return &Emitter{api: api}
}

// Emit appends a single data point to the external time-series sink.
func (e *Emitter) Emit(ctx context.Context, point model.MetricDataPoint) error {
	if point.Namespace == "" || point.Name == "" {
		return fmt.Errorf("metric point missing namespace or name")
	}

	datum := types.MetricDatum{
		MetricName: aws.String(point.Name),
		Value:      aws.Float64(point.Value),
		Unit:       standardUnit(point.Unit),
	}
	if !point.Timestamp.IsZero() {
		datum.Timestamp = aws.Time(point.Timestamp)
	}
	for name, value := range point.Dimensions {
		datum.Dimensions = append(datum.Dimensions, types.Dimension{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}

	_, err := e.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(point.Namespace),
		MetricData: []types.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric data for %s/%s: %w", point.Namespace, point.Name, err)
	}
	return nil
}

func standardUnit(unit model.MetricUnit) types.StandardUnit {
	switch unit {
	case model.UnitSeconds:
		return types.StandardUnitSeconds
	case model.UnitCount:
		return types.StandardUnitCount
	default:
		return types.StandardUnitNone
	}
}
