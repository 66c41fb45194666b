package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulepro/schedule-pro-api/internal/models"
	"github.com/schedulepro/schedule-pro-api/internal/normalizer"
)

const csvHeader = "CRN,Course,Title,Section,Term,Days,Times,Location,Status,Max,Now,Instructor,Delivery Mode,Credits,Info,Comments"

func TestReadRows(t *testing.T) {
	input := csvHeader + "\n" +
		`11001,CS100,Intro to CS,002,Fall 2025,MW,10:00 AM - 11:20 AM,CKB 101,Open,40,30,Rivera,Face-to-Face,3.0,,` + "\n" +
		`11002,CS100,Intro to CS,090,Fall 2025,TBA,TBA,,Open,40,10,Chen,Online,3.0,,`

	rows, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "11001", rows[0].CRN)
	assert.Equal(t, "MW", rows[0].Days)
	assert.Equal(t, "Face-to-Face", rows[0].DeliveryMode)
	assert.Equal(t, "TBA", rows[1].Times)
}

func TestReadRowsHeaderIsCaseInsensitive(t *testing.T) {
	input := "crn,course,DAYS,times,delivery mode\n" +
		"11001,CS100,MW,10:00 AM - 11:20 AM,Hybrid"

	rows, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "11001", rows[0].CRN)
	assert.Equal(t, "Hybrid", rows[0].DeliveryMode)
}

func TestReadRowsEmptyInput(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadDirectoryMergesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	fileA := csvHeader + "\n" +
		`20001,BIO 201,General Biology,001,Fall 2025,T,9:00 AM - 9:50 AM,CKB 220,Open,30,12,Rivera,Face-to-Face,4.0,,`
	fileB := csvHeader + "\n" +
		`20001,BIO 201,General Biology,001,Fall 2025,R,9:00 AM - 9:50 AM,CKB 220,Open,30,12,Rivera,Face-to-Face,4.0,,`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(fileA), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(fileB), 0o644))

	offerings, files, err := LoadDirectory(dir, normalizer.New(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, files)
	require.Len(t, offerings, 1, "same CRN across files merges into one offering")
	assert.Len(t, offerings[0].Meetings, 2)
}

func TestCatalogAppendSkipsKnownCRNs(t *testing.T) {
	c := New()
	first := []*models.Offering{
		{CRN: "1", CourseKey: "CS 100"},
		{CRN: "2", CourseKey: "CS 100"},
	}
	assert.Equal(t, 2, c.Append(first))

	second := []*models.Offering{
		{CRN: "2", CourseKey: "CS 100"},
		{CRN: "3", CourseKey: "MATH 111"},
	}
	assert.Equal(t, 1, c.Append(second))

	assert.Equal(t, 3, c.SectionCount())
	assert.Equal(t, 2, c.CourseCount())
	assert.False(t, c.Empty())
}

func TestCatalogReplace(t *testing.T) {
	c := New()
	c.Append([]*models.Offering{{CRN: "1", CourseKey: "CS 100"}})

	c.Replace([]*models.Offering{
		{CRN: "5", CourseKey: "PHYS 111"},
		{CRN: "6", CourseKey: "PHYS 111A"},
	})

	assert.Equal(t, 2, c.SectionCount())
	keys := c.CourseKeys()
	assert.Contains(t, keys, "PHYS 111")
	assert.Contains(t, keys, "PHYS 111A")
	assert.NotContains(t, keys, "CS 100")
}

func TestCatalogOfferingsSnapshotIsIndependent(t *testing.T) {
	c := New()
	c.Append([]*models.Offering{{CRN: "1", CourseKey: "CS 100"}})

	snapshot := c.Offerings()
	snapshot[0] = nil

	require.Len(t, c.Offerings(), 1)
	assert.NotNil(t, c.Offerings()[0])
}
