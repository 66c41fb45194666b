package solver

import (
	"strings"

	"github.com/samber/lo"

	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Matches applies every prefilter predicate to one offering. All predicates
// are AND-gated; the first failure removes the offering from its course's
// candidate set.
func Matches(o *models.Offering, f *dto.ScheduleFilters) bool {
	if !lo.Contains(f.StatusSet(), o.Status) {
		return false
	}
	if len(f.Delivery) > 0 && !lo.Contains(f.Delivery, o.Delivery) {
		return false
	}

	if len(f.AvoidInstructors) > 0 && o.Instructor != "" {
		instructor := strings.ToLower(o.Instructor)
		avoided := lo.SomeBy(f.AvoidInstructors, func(avoid string) bool {
			return strings.Contains(instructor, strings.ToLower(avoid))
		})
		if avoided {
			return false
		}
	}

	if len(f.CampusExclude) > 0 || len(f.CampusInclude) > 0 {
		// Unscheduled sections have no location to judge.
		if len(o.Meetings) == 0 {
			return false
		}
		if len(f.CampusExclude) > 0 && meetingLocationMatches(o.Meetings, f.CampusExclude) {
			return false
		}
		if len(f.CampusInclude) > 0 && !meetingLocationMatches(o.Meetings, f.CampusInclude) {
			return false
		}
	}

	if f.EarliestStart != nil {
		for _, m := range o.Meetings {
			if m.StartMin < *f.EarliestStart {
				return false
			}
		}
	}
	if f.LatestEnd != nil {
		for _, m := range o.Meetings {
			if m.EndMin > *f.LatestEnd {
				return false
			}
		}
	}

	if o.IsHonors() {
		return f.HonorsIncluded()
	}
	return f.NonHonorsIncluded()
}

func meetingLocationMatches(meetings []models.Meeting, campuses []string) bool {
	return lo.SomeBy(meetings, func(m models.Meeting) bool {
		if m.Location == "" {
			return false
		}
		location := strings.ToLower(m.Location)
		return lo.SomeBy(campuses, func(campus string) bool {
			return strings.Contains(location, strings.ToLower(campus))
		})
	})
}
