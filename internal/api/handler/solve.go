// Package handler holds the HTTP handlers of the service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	mw "github.com/jcastellanos/jobshopd/internal/api/middleware"
	"github.com/jcastellanos/jobshopd/internal/api/response"
	"github.com/jcastellanos/jobshopd/internal/engine"
	"github.com/jcastellanos/jobshopd/internal/solver"
	"github.com/jcastellanos/jobshopd/pkg/models"
)

const maxUploadBytes = 16 << 20

// Solver is the orchestrator capability the handler depends on.
type Solver interface {
	SolveOnce(ctx context.Context, req solver.Request) (*models.Schedule, error)
}

// NewSolveHandler returns the handler for POST /api/v1/solve-once. It
// accepts a JSON body (instanceId + solverConfig) or a multipart form (file
// or instanceId, plus solverConfig as a JSON string), runs the pipeline, and
// renders the solve envelope.
func NewSolveHandler(svc Solver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			req          solver.Request
			instanceName string
			err          error
		)

		if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			req, instanceName, err = extractMultipart(r)
		} else {
			req, instanceName, err = extractJSON(r)
		}
		if err != nil {
			var valErr *models.ValidationError
			if errors.As(err, &valErr) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", valErr.Error(), nil)
				return
			}
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Malformed request body", nil)
			return
		}

		started := time.Now()
		sched, err := svc.SolveOnce(r.Context(), req)
		if err != nil {
			renderSolveError(w, r, err)
			return
		}

		logs := []string{
			"solver:" + req.Config.Solver,
			"problemType:" + req.Config.ProblemType,
			"searchHeuristic:" + req.Config.SearchHeuristic,
			"valueChoice:" + req.Config.ValueChoice,
		}
		if instanceName != "" {
			logs = append(logs, "instanceName:"+instanceName)
		}

		response.Completed(w, sched, response.Meta{
			ElapsedMs: float64(time.Since(started).Milliseconds()),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: mw.RequestIDFrom(r.Context()),
		}, logs)
	}
}

// renderSolveError maps pipeline errors onto the response contract: client
// errors get the structured 400 body, solve failures get the ERROR envelope,
// and anything unrecognized is logged in full but surfaced generically.
func renderSolveError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		parseErr *models.ParseError
		valErr   *models.ValidationError
		engErr   *engine.Error
	)
	switch {
	case errors.As(err, &parseErr):
		response.Error(w, http.StatusBadRequest, "INVALID_INSTANCE", parseErr.Error(), nil)
	case errors.As(err, &valErr):
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", valErr.Error(), nil)
	case errors.Is(err, engine.ErrInfeasible):
		response.Failed(w, []string{"error: no feasible solution within budget"})
	case errors.Is(err, engine.ErrToolchainMissing), errors.As(err, &engErr):
		slog.Error("engine failure", "error", err, "request_id", mw.RequestIDFrom(r.Context()))
		response.Failed(w, []string{"error: " + err.Error()})
	case errors.Is(err, context.Canceled):
		// Client went away; the in-flight solve was already terminated.
	default:
		slog.Error("unexpected solve error", "error", err, "request_id", mw.RequestIDFrom(r.Context()))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	}
}

func extractJSON(r *http.Request) (solver.Request, string, error) {
	var body struct {
		InstanceID   string               `json:"instanceId"`
		InstanceName string               `json:"instanceName"`
		SolverConfig *models.SolverConfig `json:"solverConfig"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&body); err != nil {
		return solver.Request{}, "", models.Validationf("body", "invalid JSON body")
	}
	if body.InstanceID == "" {
		return solver.Request{}, "", models.Validationf("instanceId", "required field")
	}
	if body.SolverConfig == nil {
		return solver.Request{}, "", models.Validationf("solverConfig", "required field")
	}
	return solver.Request{
		Source: solver.Source{InstanceID: body.InstanceID},
		Config: *body.SolverConfig,
	}, body.InstanceName, nil
}

func extractMultipart(r *http.Request) (solver.Request, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return solver.Request{}, "", models.Validationf("body", "invalid multipart form")
	}

	rawCfg := r.FormValue("solverConfig")
	if rawCfg == "" {
		return solver.Request{}, "", models.Validationf("solverConfig", "required field")
	}
	var cfg models.SolverConfig
	if err := json.Unmarshal([]byte(rawCfg), &cfg); err != nil {
		return solver.Request{}, "", models.Validationf("solverConfig", "must be a valid JSON string")
	}

	instanceName := r.FormValue("instanceName")

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr != nil {
			return solver.Request{}, "", models.Validationf("file", "failed to read uploaded file")
		}
		return solver.Request{
			Source: solver.Source{Upload: data, Filename: header.Filename},
			Config: cfg,
		}, instanceName, nil
	}

	if id := r.FormValue("instanceId"); id != "" {
		return solver.Request{
			Source: solver.Source{InstanceID: id},
			Config: cfg,
		}, instanceName, nil
	}
	return solver.Request{}, "", models.Validationf("instance", "either 'file' or 'instanceId' is required")
}
