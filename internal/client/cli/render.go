package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/taskio/internal/server/models"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Strikethrough(true)
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)

	okMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Render("✓")
)

func renderTask(t *models.Task) string {
	box, title := "[ ]", t.Title
	if t.Status == models.StatusCompleted {
		box, title = "[x]", doneStyle.Render(t.Title)
	}

	parts := []string{box, title}
	switch t.Priority {
	case models.PriorityHigh:
		parts = append(parts, highStyle.Render("!high"))
	case models.PriorityLow:
		parts = append(parts, dimStyle.Render("low"))
	}
	if t.Status == models.StatusInProgress {
		parts = append(parts, dueStyle.Render("(in progress)"))
	}
	if t.DueDate != nil {
		parts = append(parts, dueStyle.Render("due "+t.DueDate.Format(dateLayout)))
	}
	if len(t.Tags) > 0 {
		parts = append(parts, dimStyle.Render("#"+strings.Join(t.Tags, " #")))
	}
	parts = append(parts, dimStyle.Render(t.ID))
	return strings.Join(parts, "  ")
}

func printTasks(w io.Writer, tasks []*models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (none)"))
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, "  "+renderTask(t))
	}
}

func printSection(w io.Writer, title string, tasks []*models.Task) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(tasks))))
	printTasks(w, tasks)
}
