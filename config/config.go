package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// DORA collector specifics
	AWS       AWSConfig
	Git       GitConfig
	GitHub    GitHubConfig
	Metrics   MetricsConfig
	Incidents IncidentsConfig
	Firehose  FirehoseConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AWSConfig identifies the accounts the collector talks to. The tooling
// account owns the pipelines; metrics land in the account the service runs in.
type AWSConfig struct {
	Region                  string
	ToolingAccountID        string
	ToolingRegion           string
	OpsAccountID            string
	CrossAccountRoleARN     string
	CrossAccountSessionName string
}

// GitConfig carries the branch and stage conventions used to decide whether a
// pipeline execution was a production deployment.
type GitConfig struct {
	DefaultMainBranch string
	ProdStageName     string
	AppRepositories   []string
}

type GitHubConfig struct {
	Token   string
	BaseURL string
}

type MetricsConfig struct {
	Namespace string
}

// IncidentsConfig bounds the window searched when correlating a deployment
// with open OpsItems.
type IncidentsConfig struct {
	LookbackWindow time.Duration
}

type FirehoseConfig struct {
	DeliveryStream string
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	SecretName      string
	SignatureHeader string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// AWS accounts
	cfg.AWS.Region = viper.GetString("aws.region")
	cfg.AWS.ToolingAccountID = viper.GetString("aws.tooling_account_id")
	cfg.AWS.ToolingRegion = viper.GetString("aws.tooling_region")
	cfg.AWS.OpsAccountID = viper.GetString("aws.ops_account_id")
	cfg.AWS.CrossAccountRoleARN = viper.GetString("aws.cross_account_role_arn")
	cfg.AWS.CrossAccountSessionName = viper.GetString("aws.cross_account_session_name")
	if cfg.AWS.ToolingRegion == "" {
		cfg.AWS.ToolingRegion = cfg.AWS.Region
	}

	// Branch and stage conventions
	cfg.Git.DefaultMainBranch = viper.GetString("git.default_main_branch")
	cfg.Git.ProdStageName = viper.GetString("git.prod_stage_name")
	cfg.Git.AppRepositories = splitList(viper.GetString("git.app_repositories"))

	// GitHub API (commit lookup)
	cfg.GitHub.Token = viper.GetString("github.token")
	cfg.GitHub.BaseURL = viper.GetString("github.base_url")
	if ghToken := viper.GetString("github_token"); ghToken != "" {
		cfg.GitHub.Token = ghToken
	}

	// Metric sink
	cfg.Metrics.Namespace = viper.GetString("metrics.namespace")

	// Incident correlation
	lookback := viper.GetString("incidents.lookback_window")
	d, err := time.ParseDuration(lookback)
	if err != nil {
		return nil, fmt.Errorf("invalid incidents.lookback_window %q: %w", lookback, err)
	}
	cfg.Incidents.LookbackWindow = d

	// Durable record sink
	cfg.Firehose.DeliveryStream = viper.GetString("firehose.delivery_stream")

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	cfg.Webhook.SecretName = viper.GetString("webhook.secret_name")
	cfg.Webhook.SignatureHeader = viper.GetString("webhook.signature_header")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("aws.region", "us-east-1")
	viper.SetDefault("aws.cross_account_session_name", "CrossAccountAccess")

	viper.SetDefault("git.default_main_branch", "main")
	viper.SetDefault("git.prod_stage_name", "DeployPROD")

	viper.SetDefault("metrics.namespace", "DORA")
	viper.SetDefault("incidents.lookback_window", "168h")

	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.signature_header", "X-Hub-Signature-256")
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

// splitList splits comma-separated values since viper might not parse arrays
// seamlessly from env.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
