package audit

import (
	"context"
	"time"

	"github.com/dropDatabas3/cordely/internal/observability/logger"
)

// Log writes a structured audit event. In the future this can be wired to DB or
// external sink; hoy va al logger estructurado.
func Log(ctx context.Context, event string, fields map[string]any) {
	l := logger.From(ctx).With(
		logger.String("audit_event", event),
		logger.String("audit_ts", time.Now().UTC().Format(time.RFC3339Nano)),
	)
	for k, v := range fields {
		l = l.With(logger.Any(k, v))
	}
	l.Info("audit")
}
