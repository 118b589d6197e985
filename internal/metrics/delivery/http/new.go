package http

import (
	"github.com/gin-gonic/gin"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/pkg/log"
)

// Handler is the public interface for the metrics HTTP delivery layer. One
// route per event-matching rule of the routing layer.
type Handler interface {
	DeploymentFrequency(c *gin.Context)
	LeadTime(c *gin.Context)
	ChangeFailure(c *gin.Context)
	IncidentOpened(c *gin.Context)
	TimeToRestore(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc metrics.UseCase
}

// New creates a new HTTP handler for the metrics domain.
func New(l log.Logger, uc metrics.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
