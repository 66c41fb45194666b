// Package normalizer turns semi-structured schedule rows into canonical
// offerings: day/time grammar parsing, status and delivery normalization,
// CRN merging and meeting-signature deduplication.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Row carries the logical columns of one tabular schedule record. Numeric
// columns stay strings here; parsing is the normalizer's job.
type Row struct {
	CRN          string
	Course       string
	Title        string
	Section      string
	Term         string
	Days         string
	Times        string
	Location     string
	Status       string
	Max          string
	Now          string
	Instructor   string
	DeliveryMode string
	Credits      string
	Info         string
	Comments     string
}

var dayTags = map[byte]models.Day{
	'M': models.Monday,
	'T': models.Tuesday,
	'W': models.Wednesday,
	'R': models.Thursday,
	'F': models.Friday,
	'S': models.Saturday,
	'U': models.Sunday,
}

// ParseDays expands a day string like "MW", "TR" or "MWF" into weekdays.
// T is Tuesday and R is Thursday; unknown characters are skipped.
func ParseDays(s string) []models.Day {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "TBA") {
		return nil
	}
	s = strings.ToUpper(s)
	var days []models.Day
	for i := 0; i < len(s); i++ {
		if day, ok := dayTags[s[i]]; ok {
			days = append(days, day)
		}
	}
	return days
}

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])`)

// ParseTime converts "8:30 AM" style clock text to minutes from midnight.
// Noon is 12:00 PM = 720 and midnight is 12:00 AM = 0.
func ParseTime(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "TBA") {
		return 0, false
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	meridiem := strings.ToUpper(m[3])
	if meridiem == "PM" && hour != 12 {
		hour += 12
	} else if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, true
}

var rangeSeparator = regexp.MustCompile(`\s*-\s*|\s+[Tt][Oo]\s+`)

// ParseTimeRange splits "8:30 AM - 9:50 AM" (or "... to ...") into start and
// end minutes. ok is false when either side fails to parse.
func ParseTimeRange(s string) (start, end int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "TBA") {
		return 0, 0, false
	}
	parts := rangeSeparator.Split(s, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, okStart := ParseTime(parts[0])
	end, okEnd := ParseTime(parts[1])
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return start, end, true
}

// NormalizeStatus maps free-text status to a Status variant.
func NormalizeStatus(s string) models.Status {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "closed"):
		return models.StatusClosed
	case strings.Contains(s, "wait"):
		return models.StatusWaitlist
	default:
		return models.StatusOpen
	}
}

// NormalizeDelivery maps free-text delivery mode to a Delivery variant. When
// the field is empty the location may imply an online section.
func NormalizeDelivery(s, location string) models.Delivery {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		loc := strings.ToLower(location)
		if strings.Contains(loc, "online") || strings.Contains(loc, "web") {
			return models.DeliveryOnline
		}
		return models.DeliveryInPerson
	}
	switch {
	case strings.Contains(s, "online"), strings.Contains(s, "web"), strings.Contains(s, "distance"):
		return models.DeliveryOnline
	case strings.Contains(s, "hybrid"), strings.Contains(s, "blended"):
		return models.DeliveryHybrid
	case strings.Contains(s, "async"):
		return models.DeliveryAsync
	default:
		return models.DeliveryInPerson
	}
}

var courseKeyPattern = regexp.MustCompile(`^([A-Z]+)\s*(\d+)([A-Z]*)`)

// ExtractCourseKey normalizes a course identifier like "CS100", "cs 100" or
// "PHYS111A" to "SUBJECT NUMBER[SUFFIX]". Unrecognized input falls back to
// the trimmed uppercase form.
func ExtractCourseKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if m := courseKeyPattern.FindStringSubmatch(s); m != nil {
		return m[1] + " " + m[2] + m[3]
	}
	return s
}

// Normalizer builds canonical offerings from raw rows.
type Normalizer struct {
	logger *zap.Logger
}

// New constructs a Normalizer. A nil logger falls back to a no-op logger.
func New(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// NormalizeRow converts one row into an Offering. Rows missing a CRN or a
// course key are dropped. Unparseable day or time tokens leave the offering
// with no meetings so TBA sections remain catalogable.
func (n *Normalizer) NormalizeRow(row Row) (*models.Offering, bool) {
	crn := strings.TrimSpace(row.CRN)
	if crn == "" {
		n.logger.Debug("dropping row without crn", zap.String("course", row.Course))
		return nil, false
	}
	courseKey := ExtractCourseKey(row.Course)
	if courseKey == "" {
		n.logger.Debug("dropping row without course key", zap.String("crn", crn))
		return nil, false
	}

	days := ParseDays(row.Days)
	start, end, timesOK := ParseTimeRange(row.Times)

	location := strings.TrimSpace(row.Location)
	var meetings []models.Meeting
	if len(days) > 0 && timesOK {
		for _, day := range days {
			meetings = append(meetings, models.Meeting{
				Day:      day,
				StartMin: start,
				EndMin:   end,
				Location: location,
			})
		}
	}

	return &models.Offering{
		CRN:        crn,
		CourseKey:  courseKey,
		Section:    strings.TrimSpace(row.Section),
		Title:      strings.TrimSpace(row.Title),
		Term:       strings.TrimSpace(row.Term),
		Meetings:   meetings,
		Status:     NormalizeStatus(row.Status),
		Delivery:   NormalizeDelivery(row.DeliveryMode, row.Location),
		Capacity:   parseIntField(row.Max),
		Enrolled:   parseIntField(row.Now),
		Instructor: strings.TrimSpace(row.Instructor),
		Credits:    parseFloatField(row.Credits),
		Info:       strings.TrimSpace(row.Info),
		Comments:   strings.TrimSpace(row.Comments),
	}, true
}

// Normalize runs the full pipeline over a batch of rows: per-row
// normalization, CRN merging, then meeting-signature deduplication.
// Multi-file ingestion passes all rows in one call so merging applies
// across files.
func (n *Normalizer) Normalize(rows []Row) []*models.Offering {
	offerings := make([]*models.Offering, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		offering, ok := n.NormalizeRow(row)
		if !ok {
			dropped++
			continue
		}
		offerings = append(offerings, offering)
	}
	if dropped > 0 {
		n.logger.Info("dropped malformed rows", zap.Int("count", dropped))
	}
	return Deduplicate(MergeByCRN(offerings))
}

// MergeByCRN combines rows that describe the same section. The first row wins
// for non-meeting attributes; meetings are unioned by (day, start, end).
// Input order of first appearance is preserved and inputs are not mutated.
func MergeByCRN(offerings []*models.Offering) []*models.Offering {
	merged := make([]*models.Offering, 0, len(offerings))
	index := make(map[string]int, len(offerings))

	for _, offering := range offerings {
		at, seen := index[offering.CRN]
		if !seen {
			clone := *offering
			clone.Meetings = append([]models.Meeting(nil), offering.Meetings...)
			index[offering.CRN] = len(merged)
			merged = append(merged, &clone)
			continue
		}
		existing := merged[at]
		for _, meeting := range offering.Meetings {
			if !hasMeetingSlot(existing.Meetings, meeting) {
				existing.Meetings = append(existing.Meetings, meeting)
			}
		}
	}
	return merged
}

func hasMeetingSlot(meetings []models.Meeting, candidate models.Meeting) bool {
	for _, m := range meetings {
		if m.Day == candidate.Day && m.StartMin == candidate.StartMin && m.EndMin == candidate.EndMin {
			return true
		}
	}
	return false
}

// Deduplicate drops offerings whose (crn, sorted meetings) signature has
// already been seen.
func Deduplicate(offerings []*models.Offering) []*models.Offering {
	seen := make(map[string]struct{}, len(offerings))
	unique := make([]*models.Offering, 0, len(offerings))
	for _, offering := range offerings {
		sig := offering.CRN + "|" + offering.MeetingSignature()
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, offering)
	}
	return unique
}

func parseIntField(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &value
}

func parseFloatField(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &value
}
