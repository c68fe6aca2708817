package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	customMiddleware "github.com/aminekebichi/MyDay/internal/middleware"
	"github.com/aminekebichi/MyDay/shared/middleware"
)

// NewRouter registers the API routes and wraps them in the middleware chain.
func NewRouter(h *ItemHandler, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", h.ListDay)
	mux.HandleFunc("GET /api/items/week", h.ListWeek)
	mux.HandleFunc("POST /api/items", h.CreateItem)
	mux.HandleFunc("PATCH /api/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.DeleteItem)
	// An empty id still reaches the handlers so they answer BAD_REQUEST.
	mux.HandleFunc("PATCH /api/items/{$}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{$}", h.DeleteItem)
	mux.HandleFunc("GET /healthz", Health)
	mux.Handle("GET /metrics", customMiddleware.MetricsHandler())

	// Outermost last: request id, security headers, metrics, logging.
	handler := middleware.LoggingMiddleware(logger)(mux)
	handler = customMiddleware.MetricsMiddleware(handler)
	handler = customMiddleware.SecurityHeadersMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	return handler
}
