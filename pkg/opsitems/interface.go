package opsitems

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// API is the subset of the SSM client used for OpsItem lookups.
type API interface {
	DescribeOpsItems(
		ctx context.Context,
		params *ssm.DescribeOpsItemsInput,
		optFns ...func(*ssm.Options),
	) (*ssm.DescribeOpsItemsOutput, error)
}
