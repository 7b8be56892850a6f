package handlers

import (
	"net/http"
)

// MetricsHandler serves Prometheus metrics, or 404 when none are configured.
func (a *App) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	if a.Metrics == nil {
		http.NotFound(w, r)
		return
	}
	a.Metrics.ServeHTTP(w, r)
}
