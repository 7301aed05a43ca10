// Package solver orchestrates the solve pipeline: instance resolution,
// schema validation, model configuration, engine invocation, result
// normalization, and solution validation.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcastellanos/jobshopd/internal/engine"
	"github.com/jcastellanos/jobshopd/internal/instance"
	"github.com/jcastellanos/jobshopd/internal/metrics"
	"github.com/jcastellanos/jobshopd/internal/model"
	"github.com/jcastellanos/jobshopd/internal/schedule"
	"github.com/jcastellanos/jobshopd/pkg/models"
)

// Source names where the instance bytes come from: an uploaded file or a
// stored instance id. Exactly one must be set.
type Source struct {
	Upload     []byte
	Filename   string
	InstanceID string
}

// Request is one solve invocation as extracted by the transport shell.
type Request struct {
	Source Source
	Config models.SolverConfig
}

// ctx deadlines get a grace period past the engine's own time limit so the
// solver can flush its best solution before being killed.
const budgetGrace = 10 * time.Second

// Service runs the pipeline. It holds only read-only collaborators; every
// request is otherwise isolated.
type Service struct {
	store  *instance.Store
	engine engine.Engine
	mx     *metrics.Metrics
	logger *slog.Logger

	// maxTimeLimit caps the caller-requested budget; 0 means uncapped.
	maxTimeLimit time.Duration
}

func New(store *instance.Store, eng engine.Engine, mx *metrics.Metrics, logger *slog.Logger, maxTimeLimit time.Duration) *Service {
	return &Service{store: store, engine: eng, mx: mx, logger: logger, maxTimeLimit: maxTimeLimit}
}

// SolveOnce executes the full pipeline for one request and returns the
// validated schedule. ParseError/ValidationError mean a bad request;
// engine.ErrInfeasible and *engine.Error are solve outcomes the caller
// renders as a failed-solve envelope.
func (s *Service) SolveOnce(ctx context.Context, req Request) (*models.Schedule, error) {
	started := time.Now()
	sched, err := s.solveOnce(ctx, req)
	s.observe(req.Config.ProblemType, time.Since(started), err)
	return sched, err
}

func (s *Service) solveOnce(ctx context.Context, req Request) (*models.Schedule, error) {
	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.resolveInstance(req.Source)
	if err != nil {
		return nil, err
	}

	modelText, err := model.Configure(cfg)
	if err != nil {
		return nil, err
	}

	limit := s.budget(cfg)
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit+budgetGrace)
		defer cancel()
	}

	engReq := engine.Request{
		ModelText:    modelText,
		Solver:       cfg.Solver,
		TimeLimit:    limit,
		MaxSolutions: cfg.MaxSolutions,
	}

	var sched *models.Schedule
	switch cfg.ProblemType {
	case models.ProblemTardiness:
		typed, err := instance.ExtractTardiness(raw)
		if err != nil {
			return nil, err
		}
		engReq.Data = typed.DataMap()
		bindings, err := s.engine.Solve(ctx, engReq)
		if err != nil {
			return nil, err
		}
		if sched, err = schedule.NormalizeTardiness(bindings, typed); err != nil {
			return nil, err
		}
	case models.ProblemMaintenance:
		typed, err := instance.ExtractMaintenance(raw)
		if err != nil {
			return nil, err
		}
		engReq.Data = typed.DataMap()
		bindings, err := s.engine.Solve(ctx, engReq)
		if err != nil {
			return nil, err
		}
		if sched, err = schedule.NormalizeMaintenance(bindings, typed); err != nil {
			return nil, err
		}
	default:
		// Unreachable past cfg.Validate; kept so a new variant cannot slip
		// through half-wired.
		return nil, models.Validationf("solverConfig.problemType", "unsupported variant %q", cfg.ProblemType)
	}

	if err := schedule.Validate(sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// resolveInstance loads and parses the raw field mapping from whichever
// source the request carries.
func (s *Service) resolveInstance(src Source) (instance.Raw, error) {
	switch {
	case len(src.Upload) > 0:
		return instance.Parse(src.Upload, src.Filename)
	case src.InstanceID != "":
		raw, err := s.store.Load(src.InstanceID)
		if errors.Is(err, instance.ErrNotFound) {
			return nil, models.Validationf("instanceId", "%v", err)
		}
		return raw, err
	default:
		return nil, models.Validationf("instance", "either an uploaded file or an instanceId is required")
	}
}

// budget derives the engine wall-clock limit from the configuration,
// applying the service-wide cap.
func (s *Service) budget(cfg models.SolverConfig) time.Duration {
	limit := time.Duration(cfg.TimeLimitSec * float64(time.Second))
	if limit <= 0 {
		return s.maxTimeLimit
	}
	if s.maxTimeLimit > 0 && limit > s.maxTimeLimit {
		return s.maxTimeLimit
	}
	return limit
}

func (s *Service) observe(problemType string, elapsed time.Duration, err error) {
	outcome := metrics.OutcomeCompleted
	var (
		parseErr *models.ParseError
		valErr   *models.ValidationError
		engErr   *engine.Error
	)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrInfeasible):
		outcome = metrics.OutcomeInfeasible
	case errors.As(err, &parseErr), errors.As(err, &valErr):
		outcome = metrics.OutcomeInvalid
	case errors.As(err, &engErr):
		outcome = metrics.OutcomeEngineError
	default:
		outcome = metrics.OutcomeEngineError
	}

	s.mx.Solves.WithLabelValues(problemType, outcome).Inc()
	s.mx.SolveDuration.WithLabelValues(problemType).Observe(elapsed.Seconds())

	if err != nil {
		s.logger.Info("solve finished",
			"problem_type", problemType,
			"outcome", outcome,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", fmt.Sprintf("%v", err),
		)
		return
	}
	s.logger.Info("solve finished",
		"problem_type", problemType,
		"outcome", outcome,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}
