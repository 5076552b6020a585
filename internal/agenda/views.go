package agenda

import (
	"time"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

func filter(tasks []*models.Task, keep func(*models.Task) bool) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dueDay places the calendar day of a due date at midnight in loc. Due
// dates are stored as midnight UTC, so the day is read in UTC.
func dueDay(due time.Time, loc *time.Location) time.Time {
	y, m, d := due.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// OnDate returns tasks due on date's calendar day, as seen in date's
// location. Tasks without a due date never match.
func OnDate(tasks []*models.Task, date time.Time) []*models.Task {
	return filter(tasks, func(t *models.Task) bool {
		return t.DueDate != nil && sameDay(dueDay(*t.DueDate, date.Location()), date)
	})
}

// Today returns tasks due on now's calendar day.
func Today(tasks []*models.Task, now time.Time) []*models.Task {
	return OnDate(tasks, now)
}

// Upcoming returns tasks due strictly after now. A due day begins at
// midnight in now's location, so tasks due today are never upcoming.
func Upcoming(tasks []*models.Task, now time.Time) []*models.Task {
	return filter(tasks, func(t *models.Task) bool {
		return t.DueDate != nil && dueDay(*t.DueDate, now.Location()).After(now)
	})
}

// WithStatus keeps tasks in the given status. An empty status or
// models.StatusAll keeps everything.
func WithStatus(tasks []*models.Task, status models.Status) []*models.Task {
	if status == "" || status == models.StatusAll {
		return filter(tasks, func(*models.Task) bool { return true })
	}
	return filter(tasks, func(t *models.Task) bool { return t.Status == status })
}

func tagSet(t *models.Task) map[string]struct{} {
	set := make(map[string]struct{}, len(t.Tags))
	for _, n := range t.Tags {
		set[n] = struct{}{}
	}
	return set
}

// MatchAllTags keeps tasks carrying every one of names. No names keeps everything.
func MatchAllTags(tasks []*models.Task, names []string) []*models.Task {
	names = NormalizeTags(names)
	return filter(tasks, func(t *models.Task) bool {
		set := tagSet(t)
		for _, n := range names {
			if _, ok := set[n]; !ok {
				return false
			}
		}
		return true
	})
}

// MatchAnyTags keeps tasks carrying at least one of names. No names keeps everything.
func MatchAnyTags(tasks []*models.Task, names []string) []*models.Task {
	names = NormalizeTags(names)
	if len(names) == 0 {
		return filter(tasks, func(*models.Task) bool { return true })
	}
	return filter(tasks, func(t *models.Task) bool {
		set := tagSet(t)
		for _, n := range names {
			if _, ok := set[n]; ok {
				return true
			}
		}
		return false
	})
}

// MatchTags dispatches on mode; anything but models.TagModeAll means "any".
func MatchTags(tasks []*models.Task, names []string, mode models.TagMode) []*models.Task {
	if mode == models.TagModeAll {
		return MatchAllTags(tasks, names)
	}
	return MatchAnyTags(tasks, names)
}
