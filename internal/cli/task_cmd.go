package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskStateCmd(app, "done", "Mark a task done", "Completed", service.TaskService.MarkDone),
		newTaskStateCmd(app, "reopen", "Move a task back to todo", "Reopened", service.TaskService.Reopen),
		newTaskStateCmd(app, "archive", "Archive a task", "Archived", service.TaskService.Archive),
		newTaskStateCmd(app, "remove", "Delete a task", "Removed", service.TaskService.Delete),
	)

	return cmd
}

func parseTaskStatus(s string) (domain.TaskStatus, error) {
	switch st := domain.TaskStatus(strings.ToLower(s)); st {
	case domain.TaskTodo, domain.TaskInProgress, domain.TaskDone, domain.TaskArchived:
		return st, nil
	}
	return "", fmt.Errorf("invalid task status %q (use todo, in_progress, done or archived)", s)
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectRef, title, description, priority, due, assignee string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			t := &domain.Task{
				ProjectID:   p.ID,
				Title:       title,
				Description: description,
				Priority:    domain.TaskPriority(strings.ToLower(priority)),
			}
			_, dueDate, err := optionalDate(cmd.Flags(), "due", due, app.location())
			if err != nil {
				return err
			}
			t.DueDate = dueDate
			if assignee != "" {
				m, err := resolveMember(ctx, app, assignee)
				if err != nil {
					return err
				}
				t.AssigneeID = &m.ID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Added task %s %s\n", formatter.ShortID(t.ID), t.Title)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Details")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high (default medium)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned member")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectRef, status, assignee string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			filter := repository.TaskFilter{IncludeArchived: all}
			if status != "" {
				if filter.Status, err = parseTaskStatus(status); err != nil {
					return err
				}
			}
			if assignee != "" {
				m, err := resolveMember(ctx, app, assignee)
				if err != nil {
					return err
				}
				filter.AssigneeID = m.ID
			}

			tasks, err := app.Tasks.ListByProject(ctx, p.ID, filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(out(cmd), "No tasks found.")
				return nil
			}
			names, err := memberNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatTaskList(tasks, names, app.now()))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only tasks assigned to this member")
	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var projectRef, title, description, priority, status, due, assignee string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}

			t.Title = domain.Coalesce(title, t.Title)
			t.Priority = domain.Coalesce(domain.TaskPriority(strings.ToLower(priority)), t.Priority)
			if cmd.Flags().Changed("description") {
				t.Description = description
			}
			if status != "" {
				if t.Status, err = parseTaskStatus(status); err != nil {
					return err
				}
			}
			dueSet, dueDate, err := optionalDate(cmd.Flags(), "due", due, app.location())
			if err != nil {
				return err
			}
			if dueSet {
				t.DueDate = dueDate
			}
			if cmd.Flags().Changed("assignee") {
				t.AssigneeID = nil
				if assignee != "" {
					m, err := resolveMember(ctx, app, assignee)
					if err != nil {
						return err
					}
					t.AssigneeID = &m.ID
				}
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Updated task %s %s\n", formatter.ShortID(t.ID), t.Title)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Details")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")
	cmd.Flags().StringVar(&status, "status", "", "todo|in_progress|done|archived")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, empty to clear)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned member (empty to clear)")

	return cmd
}

// newTaskStateCmd builds the single-argument task commands that only differ
// in the service method they call. apply is a method expression so the
// service is looked up when the command runs.
func newTaskStateCmd(app *App, use, short, verb string, apply func(service.TaskService, context.Context, string) error) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			if err := apply(app.Tasks, ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s task %s\n", verb, formatter.ShortID(id))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)

	return cmd
}
