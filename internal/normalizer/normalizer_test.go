package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

func TestParseDays(t *testing.T) {
	cases := []struct {
		input string
		want  []models.Day
	}{
		{"MW", []models.Day{models.Monday, models.Wednesday}},
		{"TR", []models.Day{models.Tuesday, models.Thursday}},
		{"MWF", []models.Day{models.Monday, models.Wednesday, models.Friday}},
		{"TF", []models.Day{models.Tuesday, models.Friday}},
		{"S", []models.Day{models.Saturday}},
		{"U", []models.Day{models.Sunday}},
		{"MR", []models.Day{models.Monday, models.Thursday}},
		{"mw", []models.Day{models.Monday, models.Wednesday}},
		{"M/W", []models.Day{models.Monday, models.Wednesday}},
		{"", nil},
		{"  ", nil},
		{"TBA", nil},
		{"tba", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDays(tc.input), "input %q", tc.input)
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"8:30 AM", 510, true},
		{"2:45 PM", 885, true},
		{"12:00 PM", 720, true},
		{"12:00 AM", 0, true},
		{"11:20 PM", 1400, true},
		{"8:30 am", 510, true},
		{"10:00AM", 600, true},
		{"TBA", 0, false},
		{"", 0, false},
		{"noonish", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTime(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	}
}

func TestParseTimeRange(t *testing.T) {
	start, end, ok := ParseTimeRange("8:30 AM - 9:50 AM")
	require.True(t, ok)
	assert.Equal(t, 510, start)
	assert.Equal(t, 590, end)

	start, end, ok = ParseTimeRange("6:00 PM - 8:50 PM")
	require.True(t, ok)
	assert.Equal(t, 1080, start)
	assert.Equal(t, 1250, end)

	start, end, ok = ParseTimeRange("9:00 AM to 9:50 AM")
	require.True(t, ok)
	assert.Equal(t, 540, start)
	assert.Equal(t, 590, end)

	for _, input := range []string{"", "TBA", "8:30 AM", "junk - more junk"} {
		_, _, ok := ParseTimeRange(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.StatusOpen, NormalizeStatus("Open"))
	assert.Equal(t, models.StatusClosed, NormalizeStatus("Closed"))
	assert.Equal(t, models.StatusClosed, NormalizeStatus("CLOSED"))
	assert.Equal(t, models.StatusWaitlist, NormalizeStatus("Waitlist"))
	assert.Equal(t, models.StatusWaitlist, NormalizeStatus("waiting list"))
	assert.Equal(t, models.StatusOpen, NormalizeStatus(""))
	assert.Equal(t, models.StatusOpen, NormalizeStatus("Anything else"))
}

func TestNormalizeDelivery(t *testing.T) {
	assert.Equal(t, models.DeliveryInPerson, NormalizeDelivery("Face-to-Face", ""))
	assert.Equal(t, models.DeliveryInPerson, NormalizeDelivery("In Person", ""))
	assert.Equal(t, models.DeliveryOnline, NormalizeDelivery("Online", ""))
	assert.Equal(t, models.DeliveryOnline, NormalizeDelivery("ONLINE", ""))
	assert.Equal(t, models.DeliveryOnline, NormalizeDelivery("Distance Learning", ""))
	assert.Equal(t, models.DeliveryHybrid, NormalizeDelivery("Hybrid", ""))
	assert.Equal(t, models.DeliveryHybrid, NormalizeDelivery("Blended", ""))
	assert.Equal(t, models.DeliveryAsync, NormalizeDelivery("Asynchronous", ""))
	assert.Equal(t, models.DeliveryInPerson, NormalizeDelivery("", "CKB 101"))
	assert.Equal(t, models.DeliveryOnline, NormalizeDelivery("", "Online Platform"))
	assert.Equal(t, models.DeliveryOnline, NormalizeDelivery("", "Web Room 2"))
	assert.Equal(t, models.DeliveryInPerson, NormalizeDelivery("", ""))
}

func TestExtractCourseKey(t *testing.T) {
	cases := map[string]string{
		"CS100":      "CS 100",
		"CS 100":     "CS 100",
		"cs 100":     "CS 100",
		"ACCT115":    "ACCT 115",
		"PHYS111A":   "PHYS 111A",
		"PHYS 111A":  "PHYS 111A",
		"MATH  111":  "MATH 111",
		"Special Topics": "SPECIAL TOPICS",
		"":           "",
	}
	for input, want := range cases {
		assert.Equal(t, want, ExtractCourseKey(input), "input %q", input)
	}
}

func TestNormalizeRowBuildsMeetings(t *testing.T) {
	n := New(zap.NewNop())

	offering, ok := n.NormalizeRow(Row{
		CRN:     "11001",
		Course:  "CS100",
		Title:   "Intro to CS",
		Section: "002",
		Days:    "MW",
		Times:   "10:00 AM - 11:20 AM",
		Location: "CKB 101",
		Status:  "Open",
		Max:     "40",
		Now:     "30",
		Credits: "3.0",
	})
	require.True(t, ok)
	assert.Equal(t, "CS 100", offering.CourseKey)
	require.Len(t, offering.Meetings, 2)
	assert.Equal(t, models.Monday, offering.Meetings[0].Day)
	assert.Equal(t, models.Wednesday, offering.Meetings[1].Day)
	for _, m := range offering.Meetings {
		assert.Equal(t, 600, m.StartMin)
		assert.Equal(t, 680, m.EndMin)
		assert.Equal(t, "CKB 101", m.Location)
	}
	require.NotNil(t, offering.Capacity)
	assert.Equal(t, 40, *offering.Capacity)
	require.NotNil(t, offering.Credits)
	assert.Equal(t, 3.0, *offering.Credits)
	seats, known := offering.SeatsAvailable()
	require.True(t, known)
	assert.Equal(t, 10, seats)
}

func TestNormalizeRowDropRules(t *testing.T) {
	n := New(nil)

	_, ok := n.NormalizeRow(Row{Course: "CS100", Title: "No CRN"})
	assert.False(t, ok)

	_, ok = n.NormalizeRow(Row{CRN: "11001"})
	assert.False(t, ok)

	// TBA sections survive with no meetings.
	offering, ok := n.NormalizeRow(Row{CRN: "11002", Course: "CS 101", Days: "TBA", Times: "TBA"})
	require.True(t, ok)
	assert.Empty(t, offering.Meetings)

	// Unparseable times keep the offering catalogable.
	offering, ok = n.NormalizeRow(Row{CRN: "11003", Course: "CS 102", Days: "MW", Times: "sometime"})
	require.True(t, ok)
	assert.Empty(t, offering.Meetings)
}

func TestMergeByCRN(t *testing.T) {
	n := New(nil)
	rows := []Row{
		{CRN: "20001", Course: "BIO 201", Section: "001", Days: "T", Times: "9:00 AM - 9:50 AM", Instructor: "Rivera"},
		{CRN: "20001", Course: "BIO 201", Section: "001", Days: "R", Times: "9:00 AM - 9:50 AM", Instructor: "Someone Else"},
	}
	offerings := n.Normalize(rows)

	require.Len(t, offerings, 1)
	merged := offerings[0]
	assert.Equal(t, "Rivera", merged.Instructor, "first row wins for attributes")
	require.Len(t, merged.Meetings, 2)
	assert.Equal(t, models.Tuesday, merged.Meetings[0].Day)
	assert.Equal(t, models.Thursday, merged.Meetings[1].Day)
	for _, m := range merged.Meetings {
		assert.Equal(t, 540, m.StartMin)
		assert.Equal(t, 590, m.EndMin)
	}
}

func TestMergeByCRNDoesNotMutateInput(t *testing.T) {
	a := &models.Offering{CRN: "1", Meetings: []models.Meeting{{Day: models.Monday, StartMin: 60, EndMin: 120}}}
	b := &models.Offering{CRN: "1", Meetings: []models.Meeting{{Day: models.Tuesday, StartMin: 60, EndMin: 120}}}

	merged := MergeByCRN([]*models.Offering{a, b})

	require.Len(t, merged, 1)
	assert.Len(t, merged[0].Meetings, 2)
	assert.Len(t, a.Meetings, 1, "input offering must stay untouched")
}

func TestDeduplicate(t *testing.T) {
	mon := models.Meeting{Day: models.Monday, StartMin: 600, EndMin: 680}
	wed := models.Meeting{Day: models.Wednesday, StartMin: 600, EndMin: 680}

	a := &models.Offering{CRN: "1", Meetings: []models.Meeting{mon, wed}}
	sameReordered := &models.Offering{CRN: "1", Meetings: []models.Meeting{wed, mon}}
	differentTimes := &models.Offering{CRN: "1", Meetings: []models.Meeting{mon}}

	unique := Deduplicate([]*models.Offering{a, sameReordered, differentTimes})
	require.Len(t, unique, 2)
	assert.Same(t, a, unique[0])
	assert.Same(t, differentTimes, unique[1])
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New(nil)
	rows := []Row{
		{CRN: "20001", Course: "BIO 201", Days: "T", Times: "9:00 AM - 9:50 AM"},
		{CRN: "20001", Course: "BIO 201", Days: "R", Times: "9:00 AM - 9:50 AM"},
		{CRN: "20002", Course: "BIO 201", Days: "F", Times: "1:00 PM - 2:20 PM"},
	}

	first := n.Normalize(rows)
	second := n.Normalize(rows)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].CRN, second[i].CRN)
		assert.Equal(t, first[i].Meetings, second[i].Meetings)
	}

	// Merging a catalog with itself yields the same catalog.
	doubled := MergeByCRN(append(append([]*models.Offering(nil), first...), first...))
	assert.Equal(t, len(first), len(Deduplicate(doubled)))
}
