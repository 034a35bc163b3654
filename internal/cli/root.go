package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Members   service.MemberService
	Tasks     service.TaskService
	Notes     service.NoteService
	FollowUps service.FollowUpService
	Work      service.WorkService
	History   service.HistoryService

	Clock        clock.Clock
	Location     *time.Location
	Logger       *zap.Logger
	HistoryDays  int
	TickInterval time.Duration

	// IsInteractive reports whether the session is attached to a terminal.
	// Nil means non-interactive.
	IsInteractive func() bool

	// PromptNote asks for the done note when `work end` runs without --note.
	// Nil falls back to the huh input.
	PromptNote func(title string) (string, error)
}

func (a *App) clk() clock.Clock {
	if a.Clock == nil {
		return clock.System{}
	}
	return a.Clock
}

func (a *App) now() time.Time {
	return a.clk().Now()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "desk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "desk",
		Short:         "Project dashboard and work-time tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newMemberCmd(app),
		newAssignCmd(app),
		newUnassignCmd(app),
		newTaskCmd(app),
		newNoteCmd(app),
		newFollowUpCmd(app),
		newWorkCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
