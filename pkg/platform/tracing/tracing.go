// Package tracing holds span helpers shared by the ledger services.
package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "redart/pkg/domain-errors"
)

// Fail records err on span, sets the status to the error's domain code, and
// returns err unchanged.
func Fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}
