package testutil

import (
	"context"
	"time"

	id "redart/pkg/domain"
	"redart/pkg/requestcontext"
)

// CallerContext returns a background context carrying caller and a fixed
// request time, the state a service sees behind the HTTP middleware.
func CallerContext(caller id.Address, now time.Time) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithTime(ctx, now)
}
