package dto

import (
	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// IngestResponse summarizes one catalog ingestion.
type IngestResponse struct {
	Filename       string `json:"filename"`
	ParsedRows     int    `json:"parsedRows"`
	NewOfferings   int    `json:"newOfferings"`
	AddedToCatalog int    `json:"addedToCatalog"`
	CatalogSize    int    `json:"catalogSize"`
}

// CatalogQuery filters and pages the offering listing.
type CatalogQuery struct {
	CourseKey string `form:"courseKey"`
	Search    string `form:"search"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// CatalogResponse pages through offerings and summarizes distinct courses.
type CatalogResponse struct {
	Offerings []*models.Offering `json:"offerings"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Courses   []CourseSummary    `json:"courses"`
}

// SectionSummary is the per-CRN view used by course listings.
type SectionSummary struct {
	CRN        string          `json:"crn"`
	Section    string          `json:"section"`
	Status     models.Status   `json:"status"`
	Delivery   models.Delivery `json:"delivery"`
	Instructor string          `json:"instructor,omitempty"`
	Credits    *float64        `json:"credits,omitempty"`
}

// CourseSummary groups a catalog's sections under their course key.
type CourseSummary struct {
	CourseKey    string           `json:"courseKey"`
	Title        string           `json:"title"`
	SectionCount int              `json:"sectionCount"`
	Sections     []SectionSummary `json:"sections,omitempty"`
}

// CourseListResponse is the distinct-course listing.
type CourseListResponse struct {
	Courses []CourseSummary `json:"courses"`
	Total   int             `json:"total"`
}
