package codepipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ErrSourceActionNotFound is returned when a pipeline has no recognizable
// Source stage configuration.
var ErrSourceActionNotFound = errors.New("source action not found in pipeline definition")

// CrossAccountConfig points the client at the tooling account that owns the
// pipelines.
type CrossAccountConfig struct {
	RoleARN     string
	SessionName string
	Region      string
}

// Client queries pipeline definitions and stage states in the tooling
// account.
type Client struct {
	api API
}

// New creates a Client that assumes the tooling account role before every
// pipeline call. Credentials are cached and refreshed by the SDK.
func New(cfg aws.Config, cross CrossAccountConfig) (*Client, error) {
	if cross.RoleARN == "" {
		return nil, fmt.Errorf("cross account role ARN is required")
	}

	stsClient := sts.NewFromConfig(cfg)
	provider := stscreds.NewAssumeRoleProvider(stsClient, cross.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		if cross.SessionName != "" {
			o.RoleSessionName = cross.SessionName
		}
	})

	toolingCfg := cfg.Copy()
	toolingCfg.Credentials = aws.NewCredentialsCache(provider)
	if cross.Region != "" {
		toolingCfg.Region = cross.Region
	}

	return &Client{api: codepipeline.NewFromConfig(toolingCfg)}, nil
}

// NewWithAPI creates a Client with a custom API, used in tests.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// StageStates returns the latest status of every stage of the pipeline.
func (c *Client) StageStates(ctx context.Context, pipelineName string) ([]StageState, error) {
	out, err := c.api.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(pipelineName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline state for %s: %w", pipelineName, err)
	}

	states := make([]StageState, 0, len(out.StageStates))
	for _, stage := range out.StageStates {
		state := StageState{Name: aws.ToString(stage.StageName)}
		if stage.LatestExecution != nil {
			state.Status = string(stage.LatestExecution.Status)
		}
		states = append(states, state)
	}
	return states, nil
}

// SourceAction extracts the branch and repository feeding the pipeline from
// its Source stage configuration.
func (c *Client) SourceAction(ctx context.Context, pipelineName string) (*SourceAction, error) {
	out, err := c.api.GetPipeline(ctx, &codepipeline.GetPipelineInput{
		Name: aws.String(pipelineName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline %s: %w", pipelineName, err)
	}
	if out.Pipeline == nil {
		return nil, ErrSourceActionNotFound
	}

	for _, stage := range out.Pipeline.Stages {
		if aws.ToString(stage.Name) != "Source" {
			continue
		}
		for _, action := range stage.Actions {
			if action.ActionTypeId == nil || string(action.ActionTypeId.Category) != "Source" {
				continue
			}
			src := &SourceAction{
				BranchName: action.Configuration["BranchName"],
				Repository: action.Configuration["RepositoryName"],
			}
			// Connection-based sources carry the repo under a different key.
			if src.Repository == "" {
				src.Repository = action.Configuration["FullRepositoryId"]
			}
			return src, nil
		}
	}
	return nil, ErrSourceActionNotFound
}
