package transform

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgLog "dora-metrics-collector/pkg/log"
	pkgResponse "dora-metrics-collector/pkg/response"
)

// Handler exposes the transformer to the stream's processing hook.
type Handler struct {
	transformer *Transformer
	l           pkgLog.Logger
}

func NewHandler(l pkgLog.Logger) *Handler {
	return &Handler{
		transformer: New(l),
		l:           l,
	}
}

// HandleTransform godoc
// @Summary     Transform a batch of stream records
// @Description Normalizes raw records into canonical JSON lines; per-record failures never fail the batch.
// @Tags        Transform
// @Accept      json
// @Produce     json
// @Success     200 {object} transform.BatchOutput
// @Router      /transform [POST]
func (h *Handler) HandleTransform(c *gin.Context) {
	ctx := c.Request.Context()

	var batch Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.l.Errorf(ctx, "Failed to parse transform batch: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// The stream expects the batch result bare, not wrapped in the service
	// response envelope.
	c.JSON(http.StatusOK, h.transformer.TransformBatch(ctx, batch))
}
