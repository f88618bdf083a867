package events

import (
	"context"
	"errors"

	dErrors "redart/pkg/domain-errors"
)

// Record emits event through e. A nil emitter and a dropped event are not
// failures; any other emit error becomes an internal error so the enclosing
// ledger transaction rolls back.
func Record(ctx context.Context, e Emitter, event Event) error {
	if e == nil {
		return nil
	}
	err := e.Emit(ctx, event)
	if err == nil || errors.Is(err, ErrDropped) {
		return nil
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record event")
}
