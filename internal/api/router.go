package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/p2pdesk/backoffice/internal/api/handlers"
	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	ordersHandler *handlers.OrdersHandler,
	paymentsHandler *handlers.PaymentsHandler,
	jobsHandler *handlers.JobsHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Order endpoints
	api.HandleFunc("/orders", ordersHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", ordersHandler.GetOrder).Methods("GET")
	api.HandleFunc("/ads", ordersHandler.ListAds).Methods("GET")

	// Payment endpoints
	api.HandleFunc("/payments/bulk", paymentsHandler.PayBulk).Methods("POST")
	api.HandleFunc("/payments/single", paymentsHandler.PaySingle).Methods("POST")

	// Scheduled job endpoints
	api.HandleFunc("/jobs/{name}/run", jobsHandler.RunJob).Methods("POST")
	api.HandleFunc("/jobs/{name}/history", jobsHandler.GetHistory).Methods("GET")

	// Apply middleware
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(metricsMiddleware())

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "p2pdesk-backoffice",
	})
}
