package webhook

import (
	"context"

	pkgLog "dora-metrics-collector/pkg/log"
)

// RecordSink is where verified payloads are durably forwarded.
type RecordSink interface {
	PutRecord(ctx context.Context, stream string, data []byte) error
}

type Handler struct {
	security *SecurityValidator
	sink     RecordSink
	stream   string
	l        pkgLog.Logger
}

func NewHandler(
	securityConfig SecurityConfig,
	sink RecordSink,
	stream string,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		security: NewSecurityValidator(securityConfig),
		sink:     sink,
		stream:   stream,
		l:        l,
	}
}
