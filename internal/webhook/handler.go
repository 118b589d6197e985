package webhook

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgResponse "dora-metrics-collector/pkg/response"
)

// HandleWebhook gates the inbound webhook channel. The signature is verified
// against the raw body before anything else reads the payload; a rejected
// request is answered without echoing or logging any payload content.
func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// Read raw body
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Verify signature before any parsing
	signature := c.GetHeader(h.security.config.SignatureHeader)
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "Webhook signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	// Check IP whitelist
	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Webhook IP rejected: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	// Check rate limit
	if err := h.security.CheckRateLimit(extractIP(c.Request)); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	// Forward the verified payload to the durable record sink
	if err := h.sink.PutRecord(ctx, h.stream, body); err != nil {
		h.l.Errorf(ctx, "Failed to forward webhook record: %v", err)
		pkgResponse.InternalError(c)
		return
	}

	h.l.Infof(ctx, "Webhook accepted, %d bytes forwarded to %s", len(body), h.stream)
	pkgResponse.OK(c, gin.H{"status": "accepted"})
}
