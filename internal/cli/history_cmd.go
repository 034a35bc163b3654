package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var projectRef, memberRef, from, to string
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the work log of a project, grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("days") && app.HistoryDays > 0 {
				days = app.HistoryDays
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			req := contract.NewHistoryRequest(p.ID, days)
			if memberRef != "" {
				m, err := resolveMember(ctx, app, memberRef)
				if err != nil {
					return err
				}
				req.MemberID = m.ID
			}
			if from != "" {
				d, err := parseDate("from", from, app.location())
				if err != nil {
					return err
				}
				req.From = &d
			}
			if to != "" {
				d, err := parseDate("to", to, app.location())
				if err != nil {
					return err
				}
				// --to is inclusive.
				end := d.AddDate(0, 0, 1)
				req.To = &end
			}

			h, err := app.History.WorkHistory(ctx, req)
			if err != nil {
				return err
			}
			names, err := memberNames(ctx, app)
			if err != nil {
				return err
			}

			fmt.Fprintln(out(cmd), formatter.Header(fmt.Sprintf("%s %s", p.DisplayID(), p.Name)))
			fmt.Fprintln(out(cmd), formatter.FormatWorkHistory(h, names))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &projectRef)
	addMemberFlag(cmd.Flags(), &memberRef)
	cmd.Flags().IntVar(&days, "days", 14, "Number of local days to show, today included")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD); overrides --days")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD), inclusive")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
