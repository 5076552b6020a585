package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/dmitrijs2005/taskio/internal/taskrpc"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// parseDue reads a calendar date as UTC midnight.
func parseDue(s string) (*time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

// parseStatus accepts the canonical names and a few shorthands.
func parseStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to do", "to-do":
		return string(models.StatusToDo)
	case "doing", "in progress", "in-progress", "wip":
		return string(models.StatusInProgress)
	case "done", "completed":
		return string(models.StatusCompleted)
	}
	return s
}

func parsePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return string(models.PriorityLow)
	case "medium", "med":
		return string(models.PriorityMedium)
	case "high":
		return string(models.PriorityHigh)
	}
	return s
}

func toModels(list []*taskrpc.Task) []*models.Task {
	out := make([]*models.Task, 0, len(list))
	for _, t := range list {
		out = append(out, t.ToModel())
	}
	return out
}

func (a *App) listCommand() *cobra.Command {
	var status, tags, mode string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			req := &taskrpc.ListTasksRequest{
				Tags:    agenda.ParseTagList(tags),
				TagMode: mode,
			}
			if status != "" {
				req.Status = parseStatus(status)
			}
			list, err := a.client.ListTasks(ctx, req)
			if err != nil {
				return err
			}
			printTasks(a.out, toModels(list))
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "only this status (todo, doing, done or all)")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tag filter")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "tag match mode: any (default) or all")
	return cmd
}

// taskFlags are shared by add and edit.
type taskFlags struct {
	title    string
	desc     string
	due      string
	priority string
	status   string
	tags     string
	clearDue bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.desc, "desc", "d", "", "description")
	cmd.Flags().StringVar(&f.due, "due", "", "due date YYYY-MM-DD")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "todo, doing or done")
	cmd.Flags().StringVarP(&f.tags, "tags", "t", "", "comma-separated tags")
}

func (a *App) addCommand() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			req := &taskrpc.CreateTaskRequest{
				Title:       strings.Join(args, " "),
				Description: f.desc,
				Priority:    parsePriority(f.priority),
				Status:      parseStatus(f.status),
				Tags:        agenda.ParseTagList(f.tags),
			}
			if f.due != "" {
				due, err := parseDue(f.due)
				if err != nil {
					return err
				}
				req.DueDate = due
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			id, err := a.client.CreateTask(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s Created %s\n", okMark, id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task; only the given flags are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			req, err := f.patch(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			t, err := a.client.UpdateTask(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, renderTask(t.ToModel()))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.title, "title", "", "new title")
	cmd.Flags().BoolVar(&f.clearDue, "clear-due", false, "remove the due date")
	return cmd
}

// patch builds an update from the flags the user actually passed. An empty
// --tags clears the tag list.
func (f *taskFlags) patch(cmd *cobra.Command, id string) (*taskrpc.UpdateTaskRequest, error) {
	changed := cmd.Flags().Changed
	req := &taskrpc.UpdateTaskRequest{TaskID: id}

	if changed("title") {
		req.Title = &f.title
	}
	if changed("desc") {
		req.Description = &f.desc
	}
	if changed("priority") {
		p := parsePriority(f.priority)
		req.Priority = &p
	}
	if changed("status") {
		s := parseStatus(f.status)
		req.Status = &s
	}
	if changed("tags") {
		tags := agenda.ParseTagList(f.tags)
		req.Tags = &tags
	}
	switch {
	case f.clearDue:
		req.ClearDueDate = true
	case changed("due"):
		due, err := parseDue(f.due)
		if err != nil {
			return nil, err
		}
		req.DueDate = due
	}

	if req.Title == nil && req.Description == nil && req.Priority == nil && req.Status == nil &&
		req.Tags == nil && req.DueDate == nil && !req.ClearDueDate {
		return nil, fmt.Errorf("nothing to change, pass at least one flag")
	}
	return req, nil
}

func (a *App) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between Completed and To Do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			t, err := a.client.ToggleTask(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %q is now %s\n", okMark, t.Title, t.Status)
			return nil
		},
	}
}

func (a *App) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			if err := a.client.DeleteTask(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s Deleted %s\n", okMark, args[0])
			return nil
		},
	}
}

func (a *App) tagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags used by your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			names, err := a.client.ListTags(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(a.out, dimStyle.Render("(no tags)"))
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(a.out, "#"+n)
			}
			return nil
		},
	}
}

func (a *App) todayCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show what is due today, what is coming up, and an optional date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			now := a.now()
			var selected time.Time
			if date != "" {
				d, err := time.ParseInLocation(dateLayout, date, now.Location())
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
				}
				selected = d
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			list, err := a.client.ListTasks(ctx, &taskrpc.ListTasksRequest{})
			if err != nil {
				return err
			}

			d := agenda.BuildDashboard(toModels(list), now, selected)
			printSection(a.out, "Today", d.Today)
			printSection(a.out, "Upcoming", d.Upcoming)
			if date != "" {
				printSection(a.out, "On "+d.SelectedDate.Format(dateLayout), d.Selected)
			}
			fmt.Fprintln(a.out, dimStyle.Render(fmt.Sprintf("%d tasks: %d to do, %d in progress, %d completed",
				d.Total, d.Counts[models.StatusToDo], d.Counts[models.StatusInProgress], d.Counts[models.StatusCompleted])))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "also show tasks due on YYYY-MM-DD")
	return cmd
}
