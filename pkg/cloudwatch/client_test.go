package cloudwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"dora-metrics-collector/internal/model"
)

type mockAPI struct {
	inputs  []*awscloudwatch.PutMetricDataInput
	putFunc func(input *awscloudwatch.PutMetricDataInput) error
}

func (m *mockAPI) PutMetricData(
	ctx context.Context,
	params *awscloudwatch.PutMetricDataInput,
	optFns ...func(*awscloudwatch.Options),
) (*awscloudwatch.PutMetricDataOutput, error) {
	if m.putFunc != nil {
		if err := m.putFunc(params); err != nil {
			return nil, err
		}
	}
	m.inputs = append(m.inputs, params)
	return &awscloudwatch.PutMetricDataOutput{}, nil
}

func TestEmit(t *testing.T) {
	ctx := context.Background()
	timestamp := time.Date(2023, 6, 12, 14, 30, 0, 0, time.UTC)

	t.Run("Point Mapped To Datum", func(t *testing.T) {
		api := &mockAPI{}
		emitter := NewWithAPI(api)

		err := emitter.Emit(ctx, model.MetricDataPoint{
			Namespace:  "DORA",
			Name:       "DeploymentFrequency",
			Value:      1,
			Unit:       model.UnitCount,
			Timestamp:  timestamp,
			Dimensions: map[string]string{"PipelineName": "app-pipeline"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(api.inputs) != 1 {
			t.Fatalf("expected 1 call, got %d", len(api.inputs))
		}

		input := api.inputs[0]
		if aws.ToString(input.Namespace) != "DORA" {
			t.Errorf("expected namespace DORA, got %s", aws.ToString(input.Namespace))
		}
		datum := input.MetricData[0]
		if aws.ToString(datum.MetricName) != "DeploymentFrequency" {
			t.Errorf("unexpected metric name %s", aws.ToString(datum.MetricName))
		}
		if datum.Unit != types.StandardUnitCount {
			t.Errorf("expected count unit, got %s", datum.Unit)
		}
		if !datum.Timestamp.Equal(timestamp) {
			t.Errorf("expected timestamp %s, got %s", timestamp, datum.Timestamp)
		}
		if len(datum.Dimensions) != 1 || aws.ToString(datum.Dimensions[0].Name) != "PipelineName" {
			t.Errorf("expected pipeline dimension, got %+v", datum.Dimensions)
		}
	})

	t.Run("Seconds Unit Mapped", func(t *testing.T) {
		api := &mockAPI{}
		emitter := NewWithAPI(api)

		if err := emitter.Emit(ctx, model.MetricDataPoint{
			Namespace: "DORA",
			Name:      "LeadTimeForChange",
			Value:     183600,
			Unit:      model.UnitSeconds,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.inputs[0].MetricData[0].Unit != types.StandardUnitSeconds {
			t.Errorf("expected seconds unit, got %s", api.inputs[0].MetricData[0].Unit)
		}
	})

	t.Run("Incomplete Point Rejected", func(t *testing.T) {
		emitter := NewWithAPI(&mockAPI{})
		if err := emitter.Emit(ctx, model.MetricDataPoint{Name: "x"}); err == nil {
			t.Errorf("expected error for missing namespace")
		}
	})

	t.Run("API Failure Wrapped", func(t *testing.T) {
		api := &mockAPI{
			putFunc: func(input *awscloudwatch.PutMetricDataInput) error {
				return errors.New("throttled")
			},
		}
		emitter := NewWithAPI(api)

		err := emitter.Emit(ctx, model.MetricDataPoint{Namespace: "DORA", Name: "x"})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
