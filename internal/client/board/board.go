// Package board is an interactive terminal view of the caller's tasks.
package board

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/taskrpc"
)

// TaskSource is the part of the API client the board needs.
type TaskSource interface {
	ListTasks(ctx context.Context, req *taskrpc.ListTasksRequest) ([]*taskrpc.Task, error)
	ToggleTask(ctx context.Context, taskID string) (*taskrpc.Task, error)
}

type View int

const (
	ViewAll View = iota
	ViewToday
	ViewUpcoming
)

func (v View) String() string {
	switch v {
	case ViewToday:
		return "Today"
	case ViewUpcoming:
		return "Upcoming"
	default:
		return "All"
	}
}

// Filter narrows the board to a status and a set of tags. It is applied on
// the client over the full list, so a toggled task enters or leaves a status
// filter without a reload.
type Filter struct {
	Status models.Status
	Tags   []string
	Mode   models.TagMode
}

func (f Filter) apply(tasks []*models.Task) []*models.Task {
	return agenda.MatchTags(agenda.WithStatus(tasks, f.Status), f.Tags, f.Mode)
}

func (f Filter) String() string {
	var parts []string
	if f.Status != "" && f.Status != models.StatusAll {
		parts = append(parts, "status: "+string(f.Status))
	}
	if tags := agenda.NormalizeTags(f.Tags); len(tags) > 0 {
		mode := models.TagModeAny
		if f.Mode == models.TagModeAll {
			mode = models.TagModeAll
		}
		parts = append(parts, "tags ("+string(mode)+"): "+strings.Join(tags, ", "))
	}
	return strings.Join(parts, "  ")
}

type tasksLoadedMsg struct {
	tasks []*models.Task
}

type taskToggledMsg struct {
	task *models.Task
}

type errMsg struct {
	err error
}

type Model struct {
	ctx     context.Context
	src     TaskSource
	timeout time.Duration
	now     func() time.Time
	filter  Filter

	all     []*models.Task
	visible []*models.Task
	view    View
	cursor  int
	loading bool
	err     error

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles
	width   int
}

func New(ctx context.Context, src TaskSource, timeout time.Duration, filter Filter) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		src:     src,
		timeout: timeout,
		now:     time.Now,
		filter:  filter,
		loading: true,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		styles:  newStyles(),
	}
}

// Run shows the board until the user quits or ctx is cancelled.
func Run(ctx context.Context, src TaskSource, timeout time.Duration, filter Filter) error {
	_, err := tea.NewProgram(New(ctx, src, timeout, filter), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m Model) load() tea.Msg {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	list, err := m.src.ListTasks(ctx, &taskrpc.ListTasksRequest{})
	if err != nil {
		return errMsg{err}
	}
	tasks := make([]*models.Task, 0, len(list))
	for _, t := range list {
		tasks = append(tasks, t.ToModel())
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (m Model) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
		defer cancel()

		t, err := m.src.ToggleTask(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return taskToggledMsg{task: t.ToModel()}
	}
}

// refresh recomputes the visible slice for the current view and keeps the
// cursor in range.
func (m *Model) refresh() {
	base := m.filter.apply(m.all)
	switch m.view {
	case ViewToday:
		m.visible = agenda.Today(base, m.now())
	case ViewUpcoming:
		m.visible = agenda.Upcoming(base, m.now())
	default:
		m.visible = base
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		m.err = nil
		m.all = msg.tasks
		m.refresh()
		return m, nil

	case taskToggledMsg:
		m.err = nil
		for i, t := range m.all {
			if t.ID == msg.task.ID {
				m.all[i] = msg.task
			}
		}
		m.refresh()
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.View):
		m.view = (m.view + 1) % 3
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Toggle):
		if len(m.visible) > 0 {
			return m, m.toggle(m.visible[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.load)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("taskio"))
	for _, v := range []View{ViewAll, ViewToday, ViewUpcoming} {
		if v == m.view {
			b.WriteString(m.styles.TabActive.Render(v.String()))
		} else {
			b.WriteString(m.styles.Tab.Render(v.String()))
		}
	}
	b.WriteString("\n")
	if f := m.filter.String(); f != "" {
		b.WriteString(m.styles.Status.Render(f))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Status.Render(m.spinner.View() + " loading..."))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(m.styles.Status.Render("nothing here"))
		b.WriteString("\n")
	default:
		for i, t := range m.visible {
			line := m.renderTask(t)
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.Item.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTask(t *models.Task) string {
	box := "[ ]"
	title := t.Title
	if t.Status == models.StatusCompleted {
		box = "[x]"
		title = m.styles.Done.Render(title)
	}

	parts := []string{box, title}
	if t.Priority == models.PriorityHigh {
		parts = append(parts, m.styles.High.Render("!"))
	}
	if t.DueDate != nil {
		parts = append(parts, m.styles.Due.Render(t.DueDate.Format("2006-01-02")))
	}
	if len(t.Tags) > 0 {
		parts = append(parts, m.styles.Tag.Render("#"+strings.Join(t.Tags, " #")))
	}
	return strings.Join(parts, " ")
}
