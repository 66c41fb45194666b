package service

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/models"
	"github.com/schedulepro/schedule-pro-api/internal/normalizer"
	appErrors "github.com/schedulepro/schedule-pro-api/pkg/errors"
)

const defaultCatalogPageSize = 100

// CatalogService owns catalog ingestion and read access.
type CatalogService struct {
	store      *catalog.Catalog
	normalizer *normalizer.Normalizer
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewCatalogService wires the catalog store with its normalizer.
func NewCatalogService(store *catalog.Catalog, norm *normalizer.Normalizer, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if norm == nil {
		norm = normalizer.New(logger)
	}
	return &CatalogService{store: store, normalizer: norm, metrics: metrics, logger: logger}
}

// Store exposes the underlying catalog for the solver service.
func (s *CatalogService) Store() *catalog.Catalog {
	return s.store
}

// LoadDirectory ingests every schedule file under dir, replacing the catalog.
// All rows pass through one normalization run so CRN merging spans files.
func (s *CatalogService) LoadDirectory(dir string) error {
	offerings, files, err := catalog.LoadDirectory(dir, s.normalizer)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule directory")
	}
	s.store.Replace(offerings)
	s.metrics.SetCatalogSize(s.store.SectionCount(), s.store.CourseCount())
	s.logger.Info("catalog loaded",
		zap.String("dir", dir),
		zap.Int("files", files),
		zap.Int("offerings", len(offerings)))
	return nil
}

// Ingest normalizes one uploaded CSV stream and appends offerings whose CRN
// is not yet present.
func (s *CatalogService) Ingest(filename string, r io.Reader) (*dto.IngestResponse, error) {
	rows, err := catalog.ReadRows(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to parse schedule file")
	}
	offerings := s.normalizer.Normalize(rows)
	s.metrics.AddDroppedRows(len(rows) - len(offerings))
	added := s.store.Append(offerings)
	s.metrics.SetCatalogSize(s.store.SectionCount(), s.store.CourseCount())

	s.logger.Info("catalog ingest",
		zap.String("filename", filename),
		zap.Int("rows", len(rows)),
		zap.Int("offerings", len(offerings)),
		zap.Int("added", added))

	return &dto.IngestResponse{
		Filename:       filename,
		ParsedRows:     len(rows),
		NewOfferings:   len(offerings),
		AddedToCatalog: added,
		CatalogSize:    s.store.SectionCount(),
	}, nil
}

// List pages through offerings with optional course-key and search filters.
func (s *CatalogService) List(query dto.CatalogQuery) *dto.CatalogResponse {
	offerings := s.store.Offerings()

	filtered := offerings
	if query.CourseKey != "" {
		filtered = filterOfferings(filtered, func(o *models.Offering) bool {
			return strings.EqualFold(o.CourseKey, query.CourseKey)
		})
	}
	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		filtered = filterOfferings(filtered, func(o *models.Offering) bool {
			return strings.Contains(strings.ToLower(o.CourseKey), needle) ||
				strings.Contains(strings.ToLower(o.Title), needle)
		})
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultCatalogPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &dto.CatalogResponse{
		Offerings: filtered[offset:end],
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		Courses:   s.courseSummaries(offerings, "", false),
	}
}

// Courses lists distinct courses with their per-CRN sections.
func (s *CatalogService) Courses(search string) *dto.CourseListResponse {
	courses := s.courseSummaries(s.store.Offerings(), search, true)
	return &dto.CourseListResponse{Courses: courses, Total: len(courses)}
}

func (s *CatalogService) courseSummaries(offerings []*models.Offering, search string, withSections bool) []dto.CourseSummary {
	index := make(map[string]int)
	var summaries []dto.CourseSummary
	for _, offering := range offerings {
		at, seen := index[offering.CourseKey]
		if !seen {
			index[offering.CourseKey] = len(summaries)
			summaries = append(summaries, dto.CourseSummary{
				CourseKey: offering.CourseKey,
				Title:     offering.Title,
			})
			at = len(summaries) - 1
		}
		summary := &summaries[at]
		if withSections && !hasSection(summary.Sections, offering.CRN) {
			summary.Sections = append(summary.Sections, dto.SectionSummary{
				CRN:        offering.CRN,
				Section:    offering.Section,
				Status:     offering.Status,
				Delivery:   offering.Delivery,
				Instructor: offering.Instructor,
				Credits:    offering.Credits,
			})
		}
		summary.SectionCount++
	}

	if search == "" {
		return summaries
	}
	needle := strings.ToLower(search)
	var matched []dto.CourseSummary
	for _, summary := range summaries {
		if strings.Contains(strings.ToLower(summary.CourseKey), needle) ||
			strings.Contains(strings.ToLower(summary.Title), needle) {
			matched = append(matched, summary)
		}
	}
	return matched
}

func hasSection(sections []dto.SectionSummary, crn string) bool {
	for _, section := range sections {
		if section.CRN == crn {
			return true
		}
	}
	return false
}

func filterOfferings(offerings []*models.Offering, keep func(*models.Offering) bool) []*models.Offering {
	var out []*models.Offering
	for _, offering := range offerings {
		if keep(offering) {
			out = append(out, offering)
		}
	}
	return out
}
