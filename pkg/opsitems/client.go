package opsitems

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"dora-metrics-collector/internal/model"
)

// Client is a read-only lookup adapter over the incident system's OpsItems.
// The incident system stays the source of truth for status; nothing is cached
// across calls.
type Client struct {
	api API
}

// New creates a Client from an AWS config.
func New(cfg aws.Config) *Client {
	return &Client{api: ssm.NewFromConfig(cfg)}
}

// NewWithAPI creates a Client with a custom API, used in tests.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// GetIncident resolves a single incident by its OpsItem id.
// Returns ErrIncidentNotFound when no OpsItem carries that id.
func (c *Client) GetIncident(ctx context.Context, id string) (*model.Incident, error) {
	if id == "" {
		return nil, ErrIncidentNotFound
	}

	out, err := c.api.DescribeOpsItems(ctx, &ssm.DescribeOpsItemsInput{
		OpsItemFilters: []types.OpsItemFilter{
			{
				Key:      types.OpsItemFilterKeyOpsitemId,
				Values:   []string{id},
				Operator: types.OpsItemFilterOperatorEqual,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe ops item %s: %w", id, err)
	}
	if len(out.OpsItemSummaries) == 0 {
		return nil, ErrIncidentNotFound
	}

	incident := fromSummary(out.OpsItemSummaries[0])
	return &incident, nil
}

// ListIncidents enumerates incidents created inside [since, until]. Paginates
// until the incident system stops returning a token.
func (c *Client) ListIncidents(ctx context.Context, since, until time.Time) ([]model.Incident, error) {
	input := &ssm.DescribeOpsItemsInput{
		OpsItemFilters: []types.OpsItemFilter{
			{
				Key:      types.OpsItemFilterKeyCreatedTime,
				Values:   []string{since.UTC().Format(time.RFC3339)},
				Operator: types.OpsItemFilterOperatorGreaterThan,
			},
			{
				Key:      types.OpsItemFilterKeyCreatedTime,
				Values:   []string{until.UTC().Format(time.RFC3339)},
				Operator: types.OpsItemFilterOperatorLessThan,
			},
		},
	}

	var incidents []model.Incident
	for {
		out, err := c.api.DescribeOpsItems(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list ops items: %w", err)
		}
		for _, summary := range out.OpsItemSummaries {
			incidents = append(incidents, fromSummary(summary))
		}
		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		input.NextToken = out.NextToken
	}
	return incidents, nil
}

func fromSummary(s types.OpsItemSummary) model.Incident {
	incident := model.Incident{
		ID:     aws.ToString(s.OpsItemId),
		Title:  aws.ToString(s.Title),
		Status: model.IncidentStatus(s.Status),
	}
	if s.CreatedTime != nil {
		incident.CreatedTime = *s.CreatedTime
	}
	if s.OperationalData != nil {
		if v, ok := s.OperationalData["description"]; ok {
			incident.Description = aws.ToString(v.Value)
		}
	}
	return incident
}
