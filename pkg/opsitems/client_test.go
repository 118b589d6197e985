package opsitems

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"dora-metrics-collector/internal/model"
)

type mockAPI struct {
	describeFunc func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error)
}

func (m *mockAPI) DescribeOpsItems(
	ctx context.Context,
	params *ssm.DescribeOpsItemsInput,
	optFns ...func(*ssm.Options),
) (*ssm.DescribeOpsItemsOutput, error) {
	return m.describeFunc(params)
}

func TestGetIncident(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2023, 6, 12, 8, 0, 0, 0, time.UTC)

	t.Run("Incident Resolved By Id", func(t *testing.T) {
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				filter := input.OpsItemFilters[0]
				if filter.Key != types.OpsItemFilterKeyOpsitemId || filter.Values[0] != "oi-1a2b3c" {
					t.Errorf("expected id filter for oi-1a2b3c, got %+v", filter)
				}
				// The wire value the incident system filters on.
				if string(filter.Key) != "OpsItemId" {
					t.Errorf("expected OpsItemId filter key, got %q", filter.Key)
				}
				return &ssm.DescribeOpsItemsOutput{
					OpsItemSummaries: []types.OpsItemSummary{
						{
							OpsItemId:   aws.String("oi-1a2b3c"),
							Title:       aws.String("Checkout broken"),
							Status:      types.OpsItemStatusOpen,
							CreatedTime: aws.Time(created),
							OperationalData: map[string]types.OpsItemDataValue{
								"description": {Value: aws.String("bad deploy 4f2b9c1")},
							},
						},
					},
				}, nil
			},
		}
		client := NewWithAPI(api)

		incident, err := client.GetIncident(ctx, "oi-1a2b3c")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if incident.ID != "oi-1a2b3c" || incident.Title != "Checkout broken" {
			t.Errorf("unexpected incident identity: %+v", incident)
		}
		if incident.Status != model.IncidentStatusOpen || !incident.Open() {
			t.Errorf("expected open incident, got %s", incident.Status)
		}
		if !incident.CreatedTime.Equal(created) {
			t.Errorf("expected created time %s, got %s", created, incident.CreatedTime)
		}
		if incident.Description != "bad deploy 4f2b9c1" {
			t.Errorf("expected operational description, got %q", incident.Description)
		}
	})

	t.Run("No Match Is Not Found", func(t *testing.T) {
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				return &ssm.DescribeOpsItemsOutput{}, nil
			},
		}
		client := NewWithAPI(api)

		_, err := client.GetIncident(ctx, "oi-missing")
		if !errors.Is(err, ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}
	})

	t.Run("Empty Id Short Circuits", func(t *testing.T) {
		called := false
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				called = true
				return &ssm.DescribeOpsItemsOutput{}, nil
			},
		}
		client := NewWithAPI(api)

		if _, err := client.GetIncident(ctx, ""); !errors.Is(err, ErrIncidentNotFound) {
			t.Errorf("expected ErrIncidentNotFound, got %v", err)
		}
		if called {
			t.Errorf("expected no API call for empty id")
		}
	})
}

func TestListIncidents(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2023, 6, 5, 14, 30, 0, 0, time.UTC)
	until := time.Date(2023, 6, 12, 14, 30, 0, 0, time.UTC)

	t.Run("Window Filters Applied", func(t *testing.T) {
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				if len(input.OpsItemFilters) != 2 {
					t.Fatalf("expected 2 filters, got %d", len(input.OpsItemFilters))
				}
				if input.OpsItemFilters[0].Operator != types.OpsItemFilterOperatorGreaterThan ||
					input.OpsItemFilters[1].Operator != types.OpsItemFilterOperatorLessThan {
					t.Errorf("expected window operators, got %+v", input.OpsItemFilters)
				}
				return &ssm.DescribeOpsItemsOutput{
					OpsItemSummaries: []types.OpsItemSummary{
						{OpsItemId: aws.String("oi-1")},
					},
				}, nil
			},
		}
		client := NewWithAPI(api)

		incidents, err := client.ListIncidents(ctx, since, until)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(incidents) != 1 || incidents[0].ID != "oi-1" {
			t.Errorf("unexpected incidents: %+v", incidents)
		}
	})

	t.Run("Pagination Followed", func(t *testing.T) {
		calls := 0
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				calls++
				if calls == 1 {
					if input.NextToken != nil {
						t.Errorf("first call must not carry a token")
					}
					return &ssm.DescribeOpsItemsOutput{
						OpsItemSummaries: []types.OpsItemSummary{{OpsItemId: aws.String("oi-1")}},
						NextToken:        aws.String("page-2"),
					}, nil
				}
				if aws.ToString(input.NextToken) != "page-2" {
					t.Errorf("expected token page-2, got %v", input.NextToken)
				}
				return &ssm.DescribeOpsItemsOutput{
					OpsItemSummaries: []types.OpsItemSummary{{OpsItemId: aws.String("oi-2")}},
				}, nil
			},
		}
		client := NewWithAPI(api)

		incidents, err := client.ListIncidents(ctx, since, until)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(incidents) != 2 {
			t.Fatalf("expected 2 incidents across pages, got %d", len(incidents))
		}
	})

	t.Run("API Failure Wrapped", func(t *testing.T) {
		api := &mockAPI{
			describeFunc: func(input *ssm.DescribeOpsItemsInput) (*ssm.DescribeOpsItemsOutput, error) {
				return nil, errors.New("throttled")
			},
		}
		client := NewWithAPI(api)

		if _, err := client.ListIncidents(ctx, since, until); err == nil {
			t.Errorf("expected error")
		}
	})
}
