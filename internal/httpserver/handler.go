package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dora-metrics-collector/internal/middleware"
	"dora-metrics-collector/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)

	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())

	// Access logging stays off in production; the routing layer already
	// records every delivery there.
	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Access log disabled in production")
	} else {
		srv.gin.Use(mw.AccessLog())
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	// Metric event routes: one per event-matching rule.
	if srv.metricsHandler != nil {
		events := srv.gin.Group("/events")
		events.POST("/deployment-frequency", srv.metricsHandler.DeploymentFrequency)
		events.POST("/lead-time", srv.metricsHandler.LeadTime)
		events.POST("/change-failure", srv.metricsHandler.ChangeFailure)
		events.POST("/incident-opened", srv.metricsHandler.IncidentOpened)
		events.POST("/time-to-restore", srv.metricsHandler.TimeToRestore)
		srv.l.Infof(ctx, "Metric event routes registered under POST /events")
	} else {
		srv.l.Infof(ctx, "Metrics handler not configured, skipping event routes")
	}

	// GitHub webhook ingestion
	if srv.webhookHandler != nil {
		srv.gin.POST("/webhook/github", srv.webhookHandler.HandleWebhook)
		srv.l.Infof(ctx, "GitHub webhook route registered at POST /webhook/github")
	} else {
		srv.l.Infof(ctx, "Webhook handler not configured, skipping GitHub webhook route")
	}

	// Delivery stream record transformation
	if srv.transformHandler != nil {
		srv.gin.POST("/transform", srv.transformHandler.HandleTransform)
		srv.l.Infof(ctx, "Transform route registered at POST /transform")
	} else {
		srv.l.Infof(ctx, "Transform handler not configured, skipping transform route")
	}

	return nil
}
