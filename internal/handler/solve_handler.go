package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/service"
	appErrors "github.com/schedulepro/schedule-pro-api/pkg/errors"
	"github.com/schedulepro/schedule-pro-api/pkg/response"
)

type scheduleSolver interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error)
}

// SolveHandler exposes the schedule solver endpoint.
type SolveHandler struct {
	service scheduleSolver
}

// NewSolveHandler constructs the handler.
func NewSolveHandler(svc *service.SolverService) *SolveHandler {
	return &SolveHandler{service: svc}
}

// Solve generates ranked schedules for the requested courses.
func (h *SolveHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve payload"))
		return
	}
	resp, err := h.service.Solve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
