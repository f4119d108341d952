package utils

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader is sent on every upstream call.
const RequestIDHeader = "X-Request-Id"

// OutboundRequestID returns the id of the inbound request carried by ctx, or a
// fresh UUID when the call does not originate from an HTTP request (CLI use).
func OutboundRequestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
