package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var scheduleHeaders = []string{
	"CRN", "Course", "Section", "Title", "Days", "Times", "Location",
	"Instructor", "Credits", "Status", "Delivery",
}

// ScheduleDataset flattens a schedule into one row per offering.
func ScheduleDataset(schedule models.Schedule) Dataset {
	rows := make([]map[string]string, 0, len(schedule.Offerings))
	for _, offering := range schedule.Offerings {
		credits := ""
		if offering.Credits != nil {
			credits = fmt.Sprintf("%g", *offering.Credits)
		}
		rows = append(rows, map[string]string{
			"CRN":        offering.CRN,
			"Course":     offering.CourseKey,
			"Section":    offering.Section,
			"Title":      offering.Title,
			"Days":       meetingDays(offering.Meetings),
			"Times":      meetingTimes(offering.Meetings),
			"Location":   meetingLocations(offering.Meetings),
			"Instructor": offering.Instructor,
			"Credits":    credits,
			"Status":     string(offering.Status),
			"Delivery":   string(offering.Delivery),
		})
	}
	return Dataset{Headers: scheduleHeaders, Rows: rows}
}

func meetingDays(meetings []models.Meeting) string {
	sorted := sortedMeetings(meetings)
	parts := make([]string, 0, len(sorted))
	for _, m := range sorted {
		parts = append(parts, string(m.Day))
	}
	return strings.Join(parts, " ")
}

func meetingTimes(meetings []models.Meeting) string {
	sorted := sortedMeetings(meetings)
	parts := make([]string, 0, len(sorted))
	for _, m := range sorted {
		parts = append(parts, fmt.Sprintf("%s %s-%s", m.Day, clockString(m.StartMin), clockString(m.EndMin)))
	}
	return strings.Join(parts, "; ")
}

func meetingLocations(meetings []models.Meeting) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, m := range sortedMeetings(meetings) {
		if m.Location == "" {
			continue
		}
		if _, dup := seen[m.Location]; dup {
			continue
		}
		seen[m.Location] = struct{}{}
		parts = append(parts, m.Location)
	}
	return strings.Join(parts, "; ")
}

func sortedMeetings(meetings []models.Meeting) []models.Meeting {
	sorted := append([]models.Meeting(nil), meetings...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day.Order() < sorted[j].Day.Order()
		}
		return sorted[i].StartMin < sorted[j].StartMin
	})
	return sorted
}

func clockString(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}
