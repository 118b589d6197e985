package codepipeline

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
)

// API is the subset of the CodePipeline client used for pipeline
// introspection.
type API interface {
	GetPipeline(
		ctx context.Context,
		params *codepipeline.GetPipelineInput,
		optFns ...func(*codepipeline.Options),
	) (*codepipeline.GetPipelineOutput, error)

	GetPipelineState(
		ctx context.Context,
		params *codepipeline.GetPipelineStateInput,
		optFns ...func(*codepipeline.Options),
	) (*codepipeline.GetPipelineStateOutput, error)
}
