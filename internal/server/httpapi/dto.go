package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/server/models"
)

const dateLayout = "2006-01-02"

// tagList accepts either a JSON array of names or one comma-separated string.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = agenda.ParseTagList(s)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("tags must be an array or a comma-separated string")
	}
	*t = names
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. A calendar
// date is midnight UTC, the form due dates are stored in.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, common.Validationf("invalid date %q", s)
	}
	return t, nil
}

// optionalDate decodes a dueDate field. Absent or empty means unset.
func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return models.CalendarDate(&t), nil
}

type taskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toView(t *models.Task) taskView {
	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return taskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toViews(list []*models.Task) []taskView {
	out := make([]taskView, 0, len(list))
	for _, t := range list {
		out = append(out, toView(t))
	}
	return out
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Tags        tagList `json:"tags"`
}

func (r createTaskRequest) toNewTask() (models.NewTask, error) {
	due, err := optionalDate(r.DueDate)
	if err != nil {
		return models.NewTask{}, err
	}
	return models.NewTask{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    models.Priority(r.Priority),
		Status:      models.Status(r.Status),
		Tags:        r.Tags,
	}, nil
}

// updateTaskRequest is a partial update. Absent fields stay unchanged;
// "dueDate": null or "" clears the due date; present "tags" replaces the set.
type updateTaskRequest struct {
	ID          string          `json:"id"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	DueDate     json.RawMessage `json:"dueDate"`
	Priority    *string         `json:"priority"`
	Status      *string         `json:"status"`
	Tags        *tagList        `json:"tags"`
}

func (r updateTaskRequest) toPatch() (models.TaskPatch, error) {
	p := models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Priority != nil {
		v := models.Priority(*r.Priority)
		p.Priority = &v
	}
	if r.Status != nil {
		v := models.Status(*r.Status)
		p.Status = &v
	}
	if r.Tags != nil {
		names := []string(*r.Tags)
		if names == nil {
			names = []string{}
		}
		p.Tags = &names
	}

	if len(r.DueDate) > 0 {
		if bytes.Equal(r.DueDate, []byte("null")) {
			p.ClearDueDate = true
			return p, nil
		}
		var s string
		if err := json.Unmarshal(r.DueDate, &s); err != nil {
			return p, common.Validationf("dueDate must be a string")
		}
		due, err := optionalDate(s)
		if err != nil {
			return p, err
		}
		if due == nil {
			p.ClearDueDate = true
		} else {
			p.DueDate = due
		}
	}
	return p, nil
}

type idRequest struct {
	ID string `json:"id"`
}

type dashboardView struct {
	Date     string         `json:"date"`
	Today    []taskView     `json:"today"`
	Upcoming []taskView     `json:"upcoming"`
	Selected []taskView     `json:"selected"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

func toDashboardView(d agenda.Dashboard) dashboardView {
	counts := make(map[string]int, len(d.Counts))
	for st, n := range d.Counts {
		key := string(st)
		if key == "" {
			key = "none"
		}
		counts[key] = n
	}
	return dashboardView{
		Date:     d.SelectedDate.Format(dateLayout),
		Today:    toViews(d.Today),
		Upcoming: toViews(d.Upcoming),
		Selected: toViews(d.Selected),
		Counts:   counts,
		Total:    d.Total,
	}
}

type attachmentView struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	FileName  string    `json:"fileName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAttachmentViews(list []*models.Attachment) []attachmentView {
	out := make([]attachmentView, 0, len(list))
	for _, a := range list {
		out = append(out, attachmentView{
			ID:        a.ID,
			TaskID:    a.TaskID,
			FileName:  a.FileName,
			Status:    a.UploadStatus,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}
