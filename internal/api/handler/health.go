package handler

import (
	"net/http"

	"github.com/jcastellanos/jobshopd/internal/api/response"
)

// Pinger reports whether the solver toolchain is usable.
type Pinger interface {
	Ping() error
}

// NewHealthHandler returns the handler for GET /api/v1/health. A missing
// solver toolchain degrades the report but does not fail the endpoint.
func NewHealthHandler(toolchain Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"toolchain": "ok"}
		if err := toolchain.Ping(); err != nil {
			checks["toolchain"] = "degraded"
		}
		response.JSON(w, map[string]any{
			"status":   "ok",
			"service":  "jobshopd",
			"services": checks,
		})
	}
}
