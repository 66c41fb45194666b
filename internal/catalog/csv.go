package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schedulepro/schedule-pro-api/internal/models"
	"github.com/schedulepro/schedule-pro-api/internal/normalizer"
)

// ReadRows decodes tabular CSV input into normalizer rows. Columns are
// matched by header name, case-insensitively; unknown columns are ignored
// and missing ones read as empty strings.
func ReadRows(r io.Reader) ([]normalizer.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows []normalizer.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		cell := func(names ...string) string {
			for _, name := range names {
				if idx, ok := columns[name]; ok && idx < len(record) {
					return record[idx]
				}
			}
			return ""
		}
		rows = append(rows, normalizer.Row{
			CRN:          cell("crn"),
			Course:       cell("course"),
			Title:        cell("title"),
			Section:      cell("section"),
			Term:         cell("term"),
			Days:         cell("days"),
			Times:        cell("times"),
			Location:     cell("location"),
			Status:       cell("status"),
			Max:          cell("max"),
			Now:          cell("now"),
			Instructor:   cell("instructor"),
			DeliveryMode: cell("delivery mode", "delivery"),
			Credits:      cell("credits"),
			Info:         cell("info"),
			Comments:     cell("comments"),
		})
	}
	return rows, nil
}

// ReadFile reads one CSV file into rows.
func ReadFile(path string) ([]normalizer.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()
	return ReadRows(f)
}

// LoadDirectory ingests every *.csv file under dir through one normalization
// pass, so CRN merging applies across files before deduplication. It returns
// the offering set and the number of files read.
func LoadDirectory(dir string, n *normalizer.Normalizer) ([]*models.Offering, int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, 0, fmt.Errorf("glob schedule files: %w", err)
	}
	var rows []normalizer.Row
	for _, path := range paths {
		fileRows, err := ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		rows = append(rows, fileRows...)
	}
	return n.Normalize(rows), len(paths), nil
}
