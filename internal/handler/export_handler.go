package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/pkg/errors"
	"github.com/schedulepro/schedule-pro-api/pkg/export"
	"github.com/schedulepro/schedule-pro-api/pkg/response"
)

const termDateLayout = "2006-01-02"

// ExportHandler renders schedules as downloadable files.
type ExportHandler struct {
	ics       *export.ICSExporter
	csv       *export.CSVExporter
	validator *validator.Validate
}

// NewExportHandler constructs the handler.
func NewExportHandler(ics *export.ICSExporter, csv *export.CSVExporter, validate *validator.Validate) *ExportHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ExportHandler{ics: ics, csv: csv, validator: validate}
}

// ICS renders a schedule as a weekly-recurring iCalendar file.
func (h *ExportHandler) ICS(c *gin.Context) {
	var req dto.ExportICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid export payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid export payload"))
		return
	}
	termStart, _ := time.Parse(termDateLayout, req.TermStart)
	termEnd, _ := time.Parse(termDateLayout, req.TermEnd)

	data, err := h.ics.Render(req.Schedule, termStart, termEnd)
	if err != nil {
		response.Error(c, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "failed to render calendar"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// CSV flattens a schedule into tabular rows.
func (h *ExportHandler) CSV(c *gin.Context) {
	var req dto.ExportCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid export payload"))
		return
	}
	data, err := h.csv.Render(export.ScheduleDataset(req.Schedule))
	if err != nil {
		response.Error(c, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render csv"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
