package models

import (
	"sort"
	"strings"
)

// Schedule is one valid assignment of offerings, one per required course.
// Identity is the set of CRNs it contains.
type Schedule struct {
	Offerings    []*Offering `json:"offerings"`
	TotalCredits float64     `json:"totalCredits"`
	Score        float64     `json:"score"`
}

// Signature returns the sorted CRN set of the schedule. Two schedules with the
// same signature are the same schedule.
func (s *Schedule) Signature() string {
	crns := make([]string, 0, len(s.Offerings))
	for _, o := range s.Offerings {
		crns = append(crns, o.CRN)
	}
	sort.Strings(crns)
	return strings.Join(crns, ",")
}
