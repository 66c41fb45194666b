package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// ISO weekday positions, Monday=0 .. Sunday=6.
var isoWeekday = map[models.Day]int{
	models.Monday:    0,
	models.Tuesday:   1,
	models.Wednesday: 2,
	models.Thursday:  3,
	models.Friday:    4,
	models.Saturday:  5,
	models.Sunday:    6,
}

// ICSExporter renders schedules as iCalendar documents with one
// weekly-recurring event per meeting.
type ICSExporter struct {
	ProductID    string
	CalendarName string
	TzID         string
}

// NewICSExporter builds an ICS exporter with sensible fallbacks.
func NewICSExporter(productID, calendarName, tzID string) *ICSExporter {
	if productID == "" {
		productID = "-//Schedule Pro//schedule-pro-api//EN"
	}
	if calendarName == "" {
		calendarName = "Course Schedule"
	}
	if tzID == "" {
		tzID = "America/New_York"
	}
	return &ICSExporter{ProductID: productID, CalendarName: calendarName, TzID: tzID}
}

// Render produces the calendar bytes. Each meeting becomes an event starting
// at the first occurrence of its day on or after termStart, recurring weekly
// until termEnd.
func (e *ICSExporter) Render(schedule models.Schedule, termStart, termEnd time.Time) ([]byte, error) {
	if termEnd.Before(termStart) {
		return nil, fmt.Errorf("term end %s precedes term start %s",
			termEnd.Format("2006-01-02"), termStart.Format("2006-01-02"))
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.ProductID)
	cal.SetName(e.CalendarName)
	cal.SetTzid(e.TzID)

	until := termEnd.UTC().Format("20060102T150405Z")

	for _, offering := range schedule.Offerings {
		for _, meeting := range offering.Meetings {
			first := firstOccurrence(termStart, meeting.Day)

			uid := fmt.Sprintf("%s-%s-%d@schedule-pro", offering.CRN, meeting.Day, meeting.StartMin)
			event := cal.AddEvent(uid)
			event.SetDtStampTime(time.Now().UTC())
			event.SetSummary(fmt.Sprintf("%s - %s", offering.CourseKey, offering.Title))
			event.SetDescription(eventDescription(offering, meeting))
			if meeting.Location != "" {
				event.SetLocation(meeting.Location)
			}
			event.SetStartAt(first.Add(time.Duration(meeting.StartMin) * time.Minute))
			event.SetEndAt(first.Add(time.Duration(meeting.EndMin) * time.Minute))
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", until))
		}
	}

	return []byte(cal.Serialize()), nil
}

// firstOccurrence returns midnight of the first date on or after start that
// falls on the given weekday.
func firstOccurrence(start time.Time, day models.Day) time.Time {
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	// time.Weekday has Sunday=0; shift to Monday=0.
	startISO := (int(midnight.Weekday()) + 6) % 7
	ahead := (isoWeekday[day] - startISO + 7) % 7
	return midnight.AddDate(0, 0, ahead)
}

func eventDescription(offering *models.Offering, meeting models.Meeting) string {
	parts := []string{
		fmt.Sprintf("Course: %s", offering.CourseKey),
		fmt.Sprintf("Section: %s", offering.Section),
		fmt.Sprintf("CRN: %s", offering.CRN),
	}
	if offering.Instructor != "" {
		parts = append(parts, fmt.Sprintf("Instructor: %s", offering.Instructor))
	}
	if meeting.Location != "" {
		parts = append(parts, fmt.Sprintf("Location: %s", meeting.Location))
	}
	if offering.Credits != nil {
		parts = append(parts, fmt.Sprintf("Credits: %g", *offering.Credits))
	}
	return strings.Join(parts, "\n")
}
