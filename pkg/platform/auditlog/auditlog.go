// Package auditlog writes the audit lines every ledger mutation leaves in the
// process log.
package auditlog

import (
	"context"
	"log/slog"

	"redart/pkg/requestcontext"
)

// Log writes event at info level tagged log_type=audit, adding the request id
// when ctx carries one. A nil logger discards the line.
func Log(ctx context.Context, logger *slog.Logger, event string, attributes ...any) {
	if logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	attributes = append(attributes, "event", event, "log_type", "audit")
	logger.InfoContext(ctx, event, attributes...)
}
