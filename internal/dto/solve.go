package dto

import (
	"github.com/schedulepro/schedule-pro-api/internal/models"
)

const (
	// DefaultMaxResults applies when a request leaves maxResults unset.
	DefaultMaxResults = 500
	// MaxResultsCeiling is the contract bound on maxResults; hosts may
	// configure a lower cap but never a higher one. The validate tag on
	// SolveRequest.MaxResults carries the same value as a literal.
	MaxResultsCeiling = 2000
)

// ScheduleFilters are per-section predicates applied before search plus the
// soft-preference knobs used by scoring.
type ScheduleFilters struct {
	Status            []models.Status   `json:"status" validate:"omitempty,dive,oneof=Open Closed Waitlist"`
	Delivery          []models.Delivery `json:"delivery,omitempty" validate:"omitempty,dive,oneof=In-Person Online Hybrid Async"`
	CampusInclude     []string          `json:"campusInclude,omitempty"`
	CampusExclude     []string          `json:"campusExclude,omitempty"`
	AvoidInstructors  []string          `json:"avoidInstructors,omitempty"`
	PreferInstructors []string          `json:"preferInstructors,omitempty"`
	EarliestStart     *int              `json:"earliestStart,omitempty" validate:"omitempty,gte=0,lt=1440"`
	LatestEnd         *int              `json:"latestEnd,omitempty" validate:"omitempty,gte=0,lte=1440"`
	MaxGapMin         *int              `json:"maxGapMin,omitempty" validate:"omitempty,gte=0"`
	IncludeHonors     *bool             `json:"includeHonors,omitempty"`
	IncludeNonHonors  *bool             `json:"includeNonHonors,omitempty"`
}

// StatusSet returns the requested statuses, defaulting to {Open}.
func (f *ScheduleFilters) StatusSet() []models.Status {
	if len(f.Status) == 0 {
		return []models.Status{models.StatusOpen}
	}
	return f.Status
}

// HonorsIncluded defaults to true when the field is absent.
func (f *ScheduleFilters) HonorsIncluded() bool {
	return f.IncludeHonors == nil || *f.IncludeHonors
}

// NonHonorsIncluded defaults to true when the field is absent.
func (f *ScheduleFilters) NonHonorsIncluded() bool {
	return f.IncludeNonHonors == nil || *f.IncludeNonHonors
}

// SolveRequest asks the solver for ranked schedules.
//
// OptionalCourseKeys is accepted for forward compatibility with the request
// contract but the solver schedules required courses only.
type SolveRequest struct {
	RequiredCourseKeys []string                   `json:"requiredCourseKeys" validate:"required,min=1,dive,required"`
	OptionalCourseKeys []string                   `json:"optionalCourseKeys,omitempty"`
	MinCredits         *float64                   `json:"minCredits,omitempty" validate:"omitempty,gte=0"`
	MaxCredits         *float64                   `json:"maxCredits,omitempty" validate:"omitempty,gte=0"`
	Unavailable        []models.AvailabilityBlock `json:"unavailable" validate:"omitempty,dive"`
	Filters            ScheduleFilters            `json:"filters"`
	MaxResults         int                        `json:"maxResults" validate:"omitempty,min=1,max=2000"`
}

// ResultLimit returns maxResults with the default applied.
func (r *SolveRequest) ResultLimit() int {
	if r.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return r.MaxResults
}

// SolveResponse carries the ranked schedules plus catalog context.
type SolveResponse struct {
	Schedules           []*models.Schedule `json:"schedules"`
	Count               int                `json:"count"`
	CatalogCourseCount  int                `json:"catalogCourseCount"`
	CatalogSectionCount int                `json:"catalogSectionCount"`
}
