package solver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Scoring weights. Per unit, each tier weighs at least ten times the next:
// 1000 per gap minute, 100 per preferred-instructor match, 1 per open seat.
// The seat term is not capped, so a large enough seat count can outweigh an
// instructor match. The tie-break stays below 1 and never changes the
// ordering of the integer-valued higher tiers. Lower scores rank first.
const (
	gapWeight       = 1000.0
	excessGapMult   = 10
	instructorBonus = 100.0
	seatWeight      = 1.0
	tieBreakWeight  = 0.001
	tieBreakModulus = 1000
)

func (s *Solver) score(offerings []*models.Offering) float64 {
	score := float64(s.totalGapMinutes(offerings)) * gapWeight

	prefer := s.request.Filters.PreferInstructors
	if len(prefer) > 0 {
		for _, offering := range offerings {
			if offering.Instructor == "" {
				continue
			}
			instructor := strings.ToLower(offering.Instructor)
			for _, pref := range prefer {
				if strings.Contains(instructor, strings.ToLower(pref)) {
					score -= instructorBonus
					break
				}
			}
		}
	}

	for _, offering := range offerings {
		if seats, ok := offering.SeatsAvailable(); ok {
			score -= float64(seats) * seatWeight
		}
	}

	var crnSum uint64
	for _, offering := range offerings {
		crnSum += crnValue(offering.CRN)
	}
	score += float64(crnSum%tieBreakModulus) * tieBreakWeight

	return score
}

// totalGapMinutes sums positive gaps between consecutive same-day meetings.
// A gap larger than the configured maximum counts tenfold.
func (s *Solver) totalGapMinutes(offerings []*models.Offering) int {
	byDay := make(map[models.Day][]models.Meeting)
	for _, offering := range offerings {
		for _, meeting := range offering.Meetings {
			byDay[meeting.Day] = append(byDay[meeting.Day], meeting)
		}
	}

	maxGap := s.request.Filters.MaxGapMin
	total := 0
	for _, meetings := range byDay {
		if len(meetings) <= 1 {
			continue
		}
		sort.Slice(meetings, func(i, j int) bool {
			if meetings[i].StartMin != meetings[j].StartMin {
				return meetings[i].StartMin < meetings[j].StartMin
			}
			return meetings[i].EndMin < meetings[j].EndMin
		})
		for i := 0; i < len(meetings)-1; i++ {
			gap := meetings[i+1].StartMin - meetings[i].EndMin
			if gap <= 0 {
				continue
			}
			if maxGap != nil && gap > *maxGap {
				total += gap * excessGapMult
			} else {
				total += gap
			}
		}
	}
	return total
}

// crnValue maps a CRN to a deterministic integer: its numeric value when the
// CRN is numeric, a stable 64-bit hash otherwise.
func crnValue(crn string) uint64 {
	if value, err := strconv.ParseUint(crn, 10, 64); err == nil {
		return value
	}
	return xxhash.Sum64String(crn)
}
