package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"dora-metrics-collector/config"
	_ "dora-metrics-collector/docs" // Swagger docs
	"dora-metrics-collector/internal/httpserver"
	"dora-metrics-collector/internal/metrics"
	metricsHTTP "dora-metrics-collector/internal/metrics/delivery/http"
	"dora-metrics-collector/internal/metrics/usecase"
	"dora-metrics-collector/internal/transform"
	"dora-metrics-collector/internal/webhook"
	"dora-metrics-collector/pkg/cloudwatch"
	"dora-metrics-collector/pkg/codepipeline"
	"dora-metrics-collector/pkg/firehose"
	"dora-metrics-collector/pkg/gitcommits"
	"dora-metrics-collector/pkg/log"
	"dora-metrics-collector/pkg/opsitems"
	"dora-metrics-collector/pkg/secrets"
)

// webhookSecretJSONKey is the key inside the JSON-object secret that holds the
// shared webhook secret.
const webhookSecretJSONKey = "github_webhook_secret"

// @title       DORA Metrics Collector API
// @description Computes DORA metrics (deployment frequency, lead time, change failure rate, time to restore) from pipeline and incident events.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	logger.Info(ctx, "Starting DORA Metrics Collector...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Metric namespace: %s", cfg.Metrics.Namespace)

	// 3. AWS clients
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.Error(ctx, "Failed to load AWS config: ", err)
		return
	}

	sink := cloudwatch.New(awsCfg)
	incidents := opsitems.New(awsCfg)

	pipelines, err := codepipeline.New(awsCfg, codepipeline.CrossAccountConfig{
		RoleARN:     cfg.AWS.CrossAccountRoleARN,
		SessionName: cfg.AWS.CrossAccountSessionName,
		Region:      cfg.AWS.ToolingRegion,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize pipeline client: ", err)
		return
	}

	commits, err := gitcommits.NewClient(cfg.GitHub.Token, cfg.GitHub.BaseURL)
	if err != nil {
		logger.Error(ctx, "Failed to initialize commit lookup client: ", err)
		return
	}

	// 4. Metrics domain
	metricsUC := usecase.New(metrics.Config{
		Namespace:         cfg.Metrics.Namespace,
		DefaultMainBranch: cfg.Git.DefaultMainBranch,
		ProdStageName:     cfg.Git.ProdStageName,
		AppRepositories:   cfg.Git.AppRepositories,
		IncidentLookback:  cfg.Incidents.LookbackWindow,
	}, sink, pipelines, commits, incidents, logger)

	metricsHandler := metricsHTTP.New(logger, metricsUC)

	// 5. Webhook ingestion (optional)
	var webhookHandler *webhook.Handler
	if cfg.Webhook.Enabled {
		secret := cfg.Webhook.Secret
		if secret == "" && cfg.Webhook.SecretName != "" {
			secretsClient := secrets.New(awsCfg)
			secret, err = secretsClient.GetJSONKey(ctx, cfg.Webhook.SecretName, webhookSecretJSONKey)
			if err != nil {
				logger.Error(ctx, "Failed to resolve webhook secret: ", err)
				return
			}
		}

		webhookHandler = webhook.NewHandler(webhook.SecurityConfig{
			Secret:          secret,
			SignatureHeader: cfg.Webhook.SignatureHeader,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		}, firehose.New(awsCfg), cfg.Firehose.DeliveryStream, logger)
		logger.Info(ctx, "Webhook ingestion enabled")
	} else {
		logger.Warn(ctx, "Webhook ingestion disabled")
	}

	// 6. HTTP Server
	serverCfg := httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		MetricsHandler:   metricsHandler,
		TransformHandler: transform.NewHandler(logger),
	}
	if webhookHandler != nil {
		serverCfg.WebhookHandler = webhookHandler
	}

	httpServer, err := httpserver.New(logger, serverCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
