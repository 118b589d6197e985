package webhook

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any) {}

type mockSink struct {
	records [][]byte
	err     error
}

func (m *mockSink) PutRecord(ctx context.Context, stream string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, data)
	return nil
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/github", h.HandleWebhook)
	return router
}

func TestHandleWebhook(t *testing.T) {
	secret := "test-webhook-secret"
	payload := []byte(`{"action":"push","ref":"refs/heads/main"}`)

	newHandler := func(sink *mockSink) *Handler {
		return NewHandler(SecurityConfig{
			Secret:          secret,
			SignatureHeader: "X-Hub-Signature-256",
			RateLimitPerMin: 600,
		}, sink, "dora-events", &mockLogger{})
	}

	post := func(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))
		if signature != "" {
			req.Header.Set("X-Hub-Signature-256", signature)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Signed Payload Forwarded", func(t *testing.T) {
		sink := &mockSink{}
		rec := post(newTestRouter(newHandler(sink)), payload, sign(secret, payload))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(sink.records) != 1 || !bytes.Equal(sink.records[0], payload) {
			t.Errorf("expected raw payload forwarded unchanged")
		}
	})

	t.Run("Invalid Signature Rejected Without Forwarding", func(t *testing.T) {
		sink := &mockSink{}
		rec := post(newTestRouter(newHandler(sink)), payload, sign("wrong", payload))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if len(sink.records) != 0 {
			t.Errorf("rejected payload must not reach the sink")
		}
		if bytes.Contains(rec.Body.Bytes(), payload) {
			t.Errorf("rejected response must not echo the payload")
		}
	})

	t.Run("Missing Signature Rejected", func(t *testing.T) {
		sink := &mockSink{}
		rec := post(newTestRouter(newHandler(sink)), payload, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("Sink Failure Is Server Error", func(t *testing.T) {
		sink := &mockSink{err: errors.New("stream unavailable")}
		rec := post(newTestRouter(newHandler(sink)), payload, sign(secret, payload))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("Non Whitelisted IP Rejected", func(t *testing.T) {
		sink := &mockSink{}
		h := NewHandler(SecurityConfig{
			Secret:          secret,
			SignatureHeader: "X-Hub-Signature-256",
			AllowedIPs:      []string{"203.0.113.7"},
			RateLimitPerMin: 600,
		}, sink, "dora-events", &mockLogger{})

		rec := post(newTestRouter(h), payload, sign(secret, payload))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if len(sink.records) != 0 {
			t.Errorf("rejected payload must not reach the sink")
		}
	})
}
