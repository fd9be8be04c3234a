package testutil

import (
	"net/http"

	"govpub/pkg/requestcontext"
)

// WithActor attaches an editor to the request, as the auth middleware would.
func WithActor(req *http.Request, actor requestcontext.Actor) *http.Request {
	return req.WithContext(requestcontext.WithUser(req.Context(), actor))
}

// WithRequestID attaches a request ID to the request.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
