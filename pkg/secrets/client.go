package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

const resourceNotFoundException = "ResourceNotFoundException"

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrKeyNotFound    = errors.New("key not found in secret")
)

// API is the subset of the Secrets Manager client this service reads with.
type API interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// Client reads shared secrets from AWS Secrets Manager. Secret values are
// never logged.
type Client struct {
	api API
}

// New creates a Client from an AWS config.
func New(cfg aws.Config) *Client {
	return &Client{api: secretsmanager.NewFromConfig(cfg)}
}

// NewWithAPI creates a Client with a custom API, used in tests.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// Get returns the raw secret string for name.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == resourceNotFoundException {
			return "", ErrSecretNotFound
		}
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", ErrSecretNotFound
	}
	return *out.SecretString, nil
}

// GetJSONKey returns one key of a JSON-object secret, the layout the webhook
// shared secret is stored in.
func (c *Client) GetJSONKey(ctx context.Context, name, key string) (string, error) {
	raw, err := c.Get(ctx, name)
	if err != nil {
		return "", err
	}

	var kv map[string]string
	if err := json.Unmarshal([]byte(raw), &kv); err != nil {
		return "", fmt.Errorf("secret %s is not a JSON object: %w", name, err)
	}
	value, ok := kv[key]
	if !ok || value == "" {
		return "", ErrKeyNotFound
	}
	return value, nil
}
