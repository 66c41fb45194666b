// Package solver enumerates valid schedules by backtracking over per-course
// candidate sets and ranks them with a deterministic soft-preference score.
package solver

import (
	"sort"

	"github.com/samber/lo"

	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Solver holds the state of one solve call. A Solver is single-use and not
// safe for concurrent use; the catalog it reads is never mutated.
type Solver struct {
	request     *dto.SolveRequest
	candidates  map[string][]*models.Offering
	blocksByDay map[models.Day][]models.AvailabilityBlock
	results     []*models.Schedule
	seen        map[string]struct{}
	done        bool
}

// New groups the catalog by course key, prefilters each candidate set and
// indexes the unavailability blocks by day. Input order is preserved through
// grouping and filtering.
func New(catalog []*models.Offering, request *dto.SolveRequest) *Solver {
	candidates := make(map[string][]*models.Offering)
	for _, offering := range catalog {
		candidates[offering.CourseKey] = append(candidates[offering.CourseKey], offering)
	}
	for courseKey, offerings := range candidates {
		candidates[courseKey] = lo.Filter(offerings, func(o *models.Offering, _ int) bool {
			return Matches(o, &request.Filters)
		})
	}

	blocksByDay := make(map[models.Day][]models.AvailabilityBlock)
	for _, block := range request.Unavailable {
		blocksByDay[block.Day] = append(blocksByDay[block.Day], block)
	}

	return &Solver{
		request:     request,
		candidates:  candidates,
		blocksByDay: blocksByDay,
		seen:        make(map[string]struct{}),
	}
}

// Solve runs the backtracking search and returns schedules sorted ascending
// by score, truncated to the request's result limit. A required course with
// an empty candidate set short-circuits to no schedules.
func (s *Solver) Solve() []*models.Schedule {
	order := append([]string(nil), s.request.RequiredCourseKeys...)
	// Fail-first: fewest candidates first, input order as the stable tie-break.
	sort.SliceStable(order, func(i, j int) bool {
		return len(s.candidates[order[i]]) < len(s.candidates[order[j]])
	})
	for _, courseKey := range order {
		if len(s.candidates[courseKey]) == 0 {
			return nil
		}
	}

	s.backtrack(order, 0, make([]*models.Offering, 0, len(order)))

	sort.SliceStable(s.results, func(i, j int) bool {
		return s.results[i].Score < s.results[j].Score
	})
	limit := s.request.ResultLimit()
	if len(s.results) > limit {
		s.results = s.results[:limit]
	}
	return s.results
}

func (s *Solver) backtrack(order []string, depth int, partial []*models.Offering) {
	if s.done {
		return
	}
	if depth == len(order) {
		s.accept(partial)
		return
	}

	for _, candidate := range s.candidates[order[depth]] {
		if s.done {
			return
		}
		if s.conflictsWithPartial(candidate, partial) || s.conflictsWithBlocks(candidate) {
			continue
		}
		partial = append(partial, candidate)
		s.backtrack(order, depth+1, partial)
		partial = partial[:len(partial)-1]
	}
}

// accept applies the leaf checks: credit window, CRN-set dedup, scoring.
// The credit window is checked iff the bound is present, so a zero bound is
// still honored.
func (s *Solver) accept(partial []*models.Offering) {
	var totalCredits float64
	for _, offering := range partial {
		if offering.Credits != nil {
			totalCredits += *offering.Credits
		}
	}
	if s.request.MinCredits != nil && totalCredits < *s.request.MinCredits {
		return
	}
	if s.request.MaxCredits != nil && totalCredits > *s.request.MaxCredits {
		return
	}

	schedule := &models.Schedule{
		Offerings:    append([]*models.Offering(nil), partial...),
		TotalCredits: totalCredits,
	}
	sig := schedule.Signature()
	if _, dup := s.seen[sig]; dup {
		return
	}
	s.seen[sig] = struct{}{}

	schedule.Score = s.score(partial)
	s.results = append(s.results, schedule)

	// Collect up to twice the limit so ranking can prefer better schedules
	// found beyond the first window, then stop the search.
	if len(s.results) >= 2*s.request.ResultLimit() {
		s.done = true
	}
}

func (s *Solver) conflictsWithPartial(candidate *models.Offering, partial []*models.Offering) bool {
	for _, chosen := range partial {
		if candidate.OverlapsWith(chosen) {
			return true
		}
	}
	return false
}

func (s *Solver) conflictsWithBlocks(candidate *models.Offering) bool {
	for _, meeting := range candidate.Meetings {
		for _, block := range s.blocksByDay[meeting.Day] {
			if meeting.ConflictsWith(block) {
				return true
			}
		}
	}
	return false
}
