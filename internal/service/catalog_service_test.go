package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	"github.com/schedulepro/schedule-pro-api/internal/dto"
)

const ingestCSV = `CRN,Course,Title,Section,Term,Days,Times,Location,Status,Max,Now,Instructor,Delivery Mode,Credits,Info,Comments
11001,CS100,Intro to CS,001,Fall 2025,MW,10:00 AM - 11:20 AM,CKB 101,Open,40,30,Rivera,Face-to-Face,3.0,,
11002,CS100,Intro to CS,002,Fall 2025,TR,2:00 PM - 3:20 PM,CKB 102,Open,40,25,Chen,Face-to-Face,3.0,,
12001,MATH111,Calculus I,001,Fall 2025,MWF,9:00 AM - 9:50 AM,TIER 201,Open,50,40,Okafor,Face-to-Face,4.0,,
,BADROW,Missing CRN,001,,,,,,,,,,,,
`

func newCatalogFixture(t *testing.T) *CatalogService {
	t.Helper()
	return NewCatalogService(catalog.New(), nil, NewMetricsService(), zap.NewNop())
}

func TestCatalogServiceIngest(t *testing.T) {
	svc := newCatalogFixture(t)

	resp, err := svc.Ingest("fall.csv", strings.NewReader(ingestCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.ParsedRows)
	assert.Equal(t, 3, resp.NewOfferings, "row without CRN is dropped")
	assert.Equal(t, 3, resp.AddedToCatalog)
	assert.Equal(t, 3, resp.CatalogSize)

	// Re-ingesting the same file adds nothing new.
	resp, err = svc.Ingest("fall.csv", strings.NewReader(ingestCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AddedToCatalog)
	assert.Equal(t, 3, resp.CatalogSize)
}

func TestCatalogServiceList(t *testing.T) {
	svc := newCatalogFixture(t)
	_, err := svc.Ingest("fall.csv", strings.NewReader(ingestCSV))
	require.NoError(t, err)

	all := svc.List(dto.CatalogQuery{})
	assert.Equal(t, 3, all.Total)
	assert.Len(t, all.Courses, 2)

	byCourse := svc.List(dto.CatalogQuery{CourseKey: "cs 100"})
	assert.Equal(t, 2, byCourse.Total)

	paged := svc.List(dto.CatalogQuery{Limit: 1, Offset: 1})
	assert.Equal(t, 3, paged.Total)
	require.Len(t, paged.Offerings, 1)
	assert.Equal(t, "11002", paged.Offerings[0].CRN)

	searched := svc.List(dto.CatalogQuery{Search: "calculus"})
	assert.Equal(t, 1, searched.Total)
}

func TestCatalogServiceCourses(t *testing.T) {
	svc := newCatalogFixture(t)
	_, err := svc.Ingest("fall.csv", strings.NewReader(ingestCSV))
	require.NoError(t, err)

	courses := svc.Courses("")
	require.Equal(t, 2, courses.Total)
	for _, course := range courses.Courses {
		if course.CourseKey == "CS 100" {
			assert.Equal(t, 2, course.SectionCount)
			assert.Len(t, course.Sections, 2)
		}
	}

	filtered := svc.Courses("math")
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "MATH 111", filtered.Courses[0].CourseKey)
}
