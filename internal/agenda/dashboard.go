package agenda

import (
	"time"

	"github.com/dmitrijs2005/taskio/internal/server/models"
)

// Dashboard is the landing view of a user: what is due today, what is due
// later, what is due on a picked calendar date, and how many tasks sit in
// each status. Tasks without a status are counted under "".
type Dashboard struct {
	Today        []*models.Task
	Upcoming     []*models.Task
	SelectedDate time.Time
	Selected     []*models.Task
	Counts       map[models.Status]int
	Total        int
}

// BuildDashboard computes the dashboard at now. A zero selected date means now.
func BuildDashboard(tasks []*models.Task, now, selected time.Time) Dashboard {
	if selected.IsZero() {
		selected = now
	}

	counts := make(map[models.Status]int)
	for _, t := range tasks {
		counts[t.Status]++
	}

	return Dashboard{
		Today:        Today(tasks, now),
		Upcoming:     Upcoming(tasks, now),
		SelectedDate: selected,
		Selected:     OnDate(tasks, selected),
		Counts:       counts,
		Total:        len(tasks),
	}
}
