package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign PROJECT MEMBER",
		Short: "Assign a member to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, m, err := resolvePair(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := app.Work.Assign(ctx, p.ID, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Assigned %s to %s [%s]\n", m.Name, p.Name, p.ShortID)
			return nil
		},
	}
}

func newUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign PROJECT MEMBER",
		Short: "Remove a member from a project; the work log is kept",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, m, err := resolvePair(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Work.Unassign(ctx, p.ID, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Unassigned %s from %s [%s]\n", m.Name, p.Name, p.ShortID)
			return nil
		},
	}
}
