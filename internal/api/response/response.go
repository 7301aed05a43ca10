// Package response renders the service's HTTP envelopes: the solve envelope
// with its COMPLETED/ERROR status tag, and the structured error body used
// for client and internal errors.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

// Envelope status tags.
const (
	StatusCompleted = "COMPLETED"
	StatusError     = "ERROR"
)

// Meta carries execution metadata alongside a completed solve.
type Meta struct {
	ElapsedMs float64 `json:"elapsedMs"`
	Timestamp string  `json:"timestamp"`
	RequestID string  `json:"requestId,omitempty"`
}

type solutionEnvelope struct {
	Status   string           `json:"status"`
	Solution *models.Schedule `json:"solution,omitempty"`
	Meta     *Meta            `json:"meta,omitempty"`
	Logs     []string         `json:"logs,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Completed writes a successful solve envelope.
func Completed(w http.ResponseWriter, sol *models.Schedule, meta Meta, logs []string) {
	writeJSON(w, http.StatusOK, solutionEnvelope{
		Status:   StatusCompleted,
		Solution: sol,
		Meta:     &meta,
		Logs:     logs,
	})
}

// Failed writes a degraded-result envelope: the request was well-formed but
// the solve did not produce a schedule (infeasible or engine failure).
func Failed(w http.ResponseWriter, logs []string) {
	writeJSON(w, http.StatusOK, solutionEnvelope{
		Status: StatusError,
		Logs:   logs,
	})
}

// JSON writes a plain success body outside the solve envelope (health).
func JSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

// Error writes the structured error body.
func Error(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
