package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

type mockAPI struct {
	getFunc func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *mockAPI) GetSecretValue(
	ctx context.Context,
	params *secretsmanager.GetSecretValueInput,
	optFns ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	return m.getFunc(params)
}

func staticSecret(value string) *mockAPI {
	return &mockAPI{
		getFunc: func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
		},
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Secret Returned", func(t *testing.T) {
		client := NewWithAPI(staticSecret("s3cr3t"))
		value, err := client.Get(ctx, "dora/webhook")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "s3cr3t" {
			t.Errorf("expected secret value, got %q", value)
		}
	})

	t.Run("Resource Not Found Mapped", func(t *testing.T) {
		api := &mockAPI{
			getFunc: func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "ResourceNotFoundException"}
			},
		}
		client := NewWithAPI(api)

		if _, err := client.Get(ctx, "missing"); !errors.Is(err, ErrSecretNotFound) {
			t.Errorf("expected ErrSecretNotFound, got %v", err)
		}
	})

	t.Run("Other Failures Wrapped", func(t *testing.T) {
		api := &mockAPI{
			getFunc: func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return nil, errors.New("access denied")
			},
		}
		client := NewWithAPI(api)

		_, err := client.Get(ctx, "dora/webhook")
		if err == nil || errors.Is(err, ErrSecretNotFound) {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})

	t.Run("Binary Only Secret Is Not Found", func(t *testing.T) {
		api := &mockAPI{
			getFunc: func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{}, nil
			},
		}
		client := NewWithAPI(api)

		if _, err := client.Get(ctx, "binary"); !errors.Is(err, ErrSecretNotFound) {
			t.Errorf("expected ErrSecretNotFound, got %v", err)
		}
	})
}

func TestGetJSONKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Key Extracted", func(t *testing.T) {
		client := NewWithAPI(staticSecret(`{"github_webhook_secret": "hunter2"}`))

		value, err := client.GetJSONKey(ctx, "dora/webhook", "github_webhook_secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "hunter2" {
			t.Errorf("expected key value, got %q", value)
		}
	})

	t.Run("Missing Key", func(t *testing.T) {
		client := NewWithAPI(staticSecret(`{"other": "x"}`))

		if _, err := client.GetJSONKey(ctx, "dora/webhook", "github_webhook_secret"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Non JSON Secret", func(t *testing.T) {
		client := NewWithAPI(staticSecret("plain-string"))

		if _, err := client.GetJSONKey(ctx, "dora/webhook", "github_webhook_secret"); err == nil {
			t.Errorf("expected error for non-JSON secret")
		}
	})
}
