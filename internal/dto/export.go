package dto

import (
	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// ExportICSRequest renders one schedule as a weekly-recurring calendar.
// Term dates use the YYYY-MM-DD form.
type ExportICSRequest struct {
	Schedule  models.Schedule `json:"schedule" validate:"required"`
	TermStart string          `json:"termStart" validate:"required,datetime=2006-01-02"`
	TermEnd   string          `json:"termEnd" validate:"required,datetime=2006-01-02"`
}

// ExportCSVRequest flattens one schedule into tabular rows.
type ExportCSVRequest struct {
	Schedule models.Schedule `json:"schedule" validate:"required"`
}
