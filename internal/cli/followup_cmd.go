package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newFollowUpCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "followup",
		Aliases: []string{"fu"},
		Short:   "Client follow-up reminders",
	}

	cmd.AddCommand(
		newFollowUpAddCmd(app),
		newFollowUpListCmd(app),
		newFollowUpDoneCmd(app),
		newFollowUpRemoveCmd(app),
		newFollowUpOverdueCmd(app),
	)

	return cmd
}

func newFollowUpAddCmd(app *App) *cobra.Command {
	var projectRef, summary, due, owner string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a follow-up",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			dueDate, err := parseDate("due", due, app.location())
			if err != nil {
				return err
			}
			f := &domain.FollowUp{ProjectID: p.ID, Summary: summary, DueDate: dueDate}
			if owner != "" {
				m, err := resolveMember(ctx, app, owner)
				if err != nil {
					return err
				}
				f.OwnerID = &m.ID
			}
			if err := app.FollowUps.Add(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Follow-up %s due %s\n", formatter.ShortID(f.ID), f.DueDate.Format(dateLayout))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().StringVar(&summary, "summary", "", "What to follow up on")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&owner, "owner", "", "Member responsible")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("summary")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newFollowUpListCmd(app *App) *cobra.Command {
	var projectRef string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's follow-ups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			items, err := app.FollowUps.ListByProject(ctx, p.ID, !all)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out(cmd), "No follow-ups found.")
				return nil
			}
			fmt.Fprint(out(cmd), formatter.FormatFollowUpList(items, nil, app.now()))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	cmd.Flags().BoolVar(&all, "all", false, "Include completed follow-ups")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newFollowUpDoneCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a follow-up completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveFollowUpID(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			if err := app.FollowUps.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Completed follow-up %s\n", formatter.ShortID(id))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)

	return cmd
}

func newFollowUpRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a follow-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveFollowUpID(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			if err := app.FollowUps.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Removed follow-up %s\n", formatter.ShortID(id))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)

	return cmd
}

func newFollowUpOverdueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List pending follow-ups past their due date, across projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			items, err := app.FollowUps.ListOverdue(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out(cmd), "Nothing overdue.")
				return nil
			}
			projects, err := app.Projects.List(ctx, true)
			if err != nil {
				return err
			}
			labels := make(map[string]string, len(projects))
			for _, p := range projects {
				labels[p.ID] = p.DisplayID()
			}
			fmt.Fprint(out(cmd), formatter.FormatFollowUpList(items, labels, app.now()))
			return nil
		},
	}
}
