package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/models"
	"github.com/schedulepro/schedule-pro-api/internal/solver"
	appErrors "github.com/schedulepro/schedule-pro-api/pkg/errors"
)

// SolverService validates solve requests and runs the backtracking solver
// over the current catalog. The search itself is synchronous and CPU-bound;
// concurrent solves share the read-only catalog without synchronization.
type SolverService struct {
	store     *catalog.Catalog
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       SolverServiceConfig
}

// SolverServiceConfig governs solver behaviour. MaxResultsCap bounds the
// maxResults a request may ask for; the contract ceiling of 2000 applies
// when unset.
type SolverServiceConfig struct {
	MaxResultsCap int
}

// NewSolverService wires solver dependencies.
func NewSolverService(store *catalog.Catalog, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, cfg SolverServiceConfig) *SolverService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxResultsCap <= 0 || cfg.MaxResultsCap > dto.MaxResultsCeiling {
		cfg.MaxResultsCap = dto.MaxResultsCeiling
	}
	return &SolverService{store: store, validator: validate, logger: logger, metrics: metrics, cfg: cfg}
}

// Solve validates the request, checks catalog preconditions and returns the
// ranked schedules. An exhausted search is a normal response with count 0.
func (s *SolverService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve payload")
	}
	if req.MaxResults > s.cfg.MaxResultsCap {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("maxResults must not exceed %d", s.cfg.MaxResultsCap))
	}
	if req.MinCredits != nil && req.MaxCredits != nil && *req.MinCredits > *req.MaxCredits {
		return nil, appErrors.Clone(appErrors.ErrValidation, "minCredits must not exceed maxCredits")
	}
	for _, block := range req.Unavailable {
		if block.StartMin > block.EndMin {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unavailable block start must not exceed its end")
		}
	}

	if s.store.Empty() {
		return nil, appErrors.Clone(appErrors.ErrCatalogEmpty, "")
	}

	courseKeys := s.store.CourseKeys()
	var missing []string
	for _, courseKey := range req.RequiredCourseKeys {
		if _, ok := courseKeys[courseKey]; !ok {
			missing = append(missing, courseKey)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrUnknownCourse,
			fmt.Sprintf("required courses not found in catalog: %s", strings.Join(missing, ", ")))
	}

	offerings := s.store.Offerings()
	start := time.Now()
	schedules := solver.New(offerings, &req).Solve()
	elapsed := time.Since(start)

	s.metrics.ObserveSolve(elapsed, len(schedules))
	s.logger.Info("solve completed",
		zap.Strings("required", req.RequiredCourseKeys),
		zap.Int("catalog_sections", len(offerings)),
		zap.Int("schedules", len(schedules)),
		zap.Duration("elapsed", elapsed))

	if schedules == nil {
		schedules = []*models.Schedule{}
	}
	return &dto.SolveResponse{
		Schedules:           schedules,
		Count:               len(schedules),
		CatalogCourseCount:  s.store.CourseCount(),
		CatalogSectionCount: s.store.SectionCount(),
	}, nil
}
