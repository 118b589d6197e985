package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	metricsHTTP "dora-metrics-collector/internal/metrics/delivery/http"
	"dora-metrics-collector/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Metric event routes
	metricsHandler metricsHTTP.Handler

	// GitHub webhook ingestion
	webhookHandler interface {
		HandleWebhook(c *gin.Context)
	}

	// Delivery stream record transformation
	transformHandler interface {
		HandleTransform(c *gin.Context)
	}
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Metric event routes
	MetricsHandler metricsHTTP.Handler

	// GitHub webhook ingestion
	WebhookHandler interface {
		HandleWebhook(c *gin.Context)
	}

	// Delivery stream record transformation
	TransformHandler interface {
		HandleTransform(c *gin.Context)
	}
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                logger,
		gin:              gin.Default(),
		port:             cfg.Port,
		mode:             cfg.Mode,
		environment:      cfg.Environment,
		metricsHandler:   cfg.MetricsHandler,
		webhookHandler:   cfg.WebhookHandler,
		transformHandler: cfg.TransformHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
