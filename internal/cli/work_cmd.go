package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/tracker"
	"github.com/spf13/cobra"
)

type workFlags struct {
	project string
	member  string
}

func newWorkCmd(app *App) *cobra.Command {
	var flags workFlags

	cmd := &cobra.Command{
		Use:   "work",
		Short: "Track work time on a project",
	}
	addProjectFlag(cmd.PersistentFlags(), &flags.project)
	addMemberFlag(cmd.PersistentFlags(), &flags.member)

	cmd.AddCommand(
		newWorkTransitionCmd(app, &flags, domain.EventStart, "Start a work session"),
		newWorkTransitionCmd(app, &flags, domain.EventHold, "Put the running session on hold"),
		newWorkTransitionCmd(app, &flags, domain.EventResume, "Resume a held session"),
		newWorkEndCmd(app, &flags),
		newWorkStatusCmd(app, &flags),
		newWorkWatchCmd(app, &flags),
	)

	return cmd
}

// loadTracker resolves the pair and loads its confirmed session.
func loadTracker(ctx context.Context, app *App, flags *workFlags) (*tracker.Tracker, contract.SessionView, error) {
	p, m, err := resolvePair(ctx, app, flags.project, flags.member)
	if err != nil {
		return nil, contract.SessionView{}, err
	}
	tr, err := tracker.New(ctx, app.Work, app.clk(), app.logger(), p.ID, m.ID)
	if err != nil {
		return nil, contract.SessionView{}, err
	}
	view := contract.SessionView{
		ProjectName:    p.Name,
		ProjectShortID: p.DisplayID(),
		MemberName:     m.Name,
	}
	return tr, view, nil
}

func runTransition(ctx context.Context, cmd *cobra.Command, app *App, tr *tracker.Tracker, ev domain.WorkEventType, note string) error {
	if _, err := tr.Transition(ctx, ev, note); err != nil {
		return err
	}
	confirmed := tr.Confirmed()
	elapsed := confirmed.ElapsedSeconds(app.now())
	fmt.Fprintln(out(cmd), formatter.FormatTransition(ev, &confirmed, elapsed))
	return nil
}

func newWorkTransitionCmd(app *App, flags *workFlags, ev domain.WorkEventType, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(ev),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, err := loadTracker(ctx, app, flags)
			if err != nil {
				return err
			}
			return runTransition(ctx, cmd, app, tr, ev, "")
		},
	}
}

func newWorkEndCmd(app *App, flags *workFlags) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the session with a note on what was done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, view, err := loadTracker(ctx, app, flags)
			if err != nil {
				return err
			}
			// Prompt only when the end itself would be accepted.
			if validateDoneNote(note) != nil && app.interactive() && tr.Snapshot().Allows(domain.EventEnd) {
				if note, err = app.promptNote(fmt.Sprintf("Done on %s", view.ProjectName)); err != nil {
					return err
				}
			}
			return runTransition(ctx, cmd, app, tr, domain.EventEnd, note)
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "What was done (required)")

	return cmd
}

func newWorkStatusCmd(app *App, flags *workFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state for a pair, a project or a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			switch {
			case flags.project != "" && flags.member != "":
				tr, view, err := loadTracker(ctx, app, flags)
				if err != nil {
					return err
				}
				confirmed := tr.Confirmed()
				view.Session = &confirmed
				view.ElapsedSeconds = confirmed.ElapsedSeconds(app.now())
				fmt.Fprintln(out(cmd), formatter.FormatSessionStatus(view, app.location()))
				return nil

			case flags.project != "":
				p, err := resolveProject(ctx, app, flags.project)
				if err != nil {
					return err
				}
				views, err := app.Work.ListSessions(ctx, p.ID)
				if err != nil {
					return err
				}
				if len(views) == 0 {
					fmt.Fprintf(out(cmd), "Nobody is assigned to %s.\n", p.DisplayID())
					return nil
				}
				fmt.Fprint(out(cmd), formatter.FormatSessionList(views, false))
				return nil

			case flags.member != "":
				m, err := resolveMember(ctx, app, flags.member)
				if err != nil {
					return err
				}
				views, err := app.Work.ListMemberSessions(ctx, m.ID)
				if err != nil {
					return err
				}
				if len(views) == 0 {
					fmt.Fprintf(out(cmd), "%s is not assigned to any project.\n", m.Name)
					return nil
				}
				fmt.Fprint(out(cmd), formatter.FormatSessionList(views, true))
				return nil

			default:
				return fmt.Errorf("pass --project, --member or both")
			}
		},
	}
}

func newWorkWatchCmd(app *App, flags *workFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live timer for a session (s start, h hold, r resume, e end, q quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			tr, view, err := loadTracker(ctx, app, flags)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s %s · %s", view.ProjectShortID, view.ProjectName, view.MemberName)

			if app.interactive() {
				return runWatchView(ctx, app, tr, title)
			}

			w := out(cmd)
			fmt.Fprintln(w, title)
			snap := tr.Snapshot()
			if snap.Status != domain.WorkRunning {
				fmt.Fprintln(w, formatter.FormatTimerLine(snap, snap.ElapsedSeconds(app.now())))
				return nil
			}
			err = tr.Watch(ctx, app.TickInterval, func(snap tracker.Snapshot, elapsed int64) {
				fmt.Fprintln(w, formatter.FormatTimerLine(snap, elapsed))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
