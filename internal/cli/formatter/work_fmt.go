package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/tracker"
)

// FormatSessionList renders assignments with their session state. With
// byProject the first column names the project (a member's view); otherwise
// it names the member (a project's view).
func FormatSessionList(views []contract.SessionView, byProject bool) string {
	first := "MEMBER"
	if byProject {
		first = "PROJECT"
	}
	headers := []string{first, "STATUS", "CURRENT", "CYCLE"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		label := v.MemberName
		if byProject {
			label = fmt.Sprintf("%s %s", StyleBold.Render(v.ProjectShortID), v.ProjectName)
		}
		cycle := Dim("—")
		if v.Session.Cycle > 0 {
			cycle = fmt.Sprintf("%d", v.Session.Cycle)
		}
		rows = append(rows, []string{
			label,
			WorkStatusPill(v.Session.Status),
			FormatDuration(v.ElapsedSeconds),
			cycle,
		})
	}
	return RenderTable(headers, rows)
}

// FormatSessionStatus renders one session as a box.
func FormatSessionStatus(v contract.SessionView, loc *time.Location) string {
	s := v.Session
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Member: "), v.MemberName)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status: "), WorkStatusPill(s.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("Current:"), Bold(FormatClock(v.ElapsedSeconds)))
	if s.RunningSince != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Since:  "), s.RunningSince.In(loc).Format("15:04:05"))
	}
	if s.Cycle > 0 {
		fmt.Fprintf(&b, "%s %d", Dim("Cycle:  "), s.Cycle)
	}
	return RenderBox(fmt.Sprintf("%s %s", v.ProjectShortID, v.ProjectName), strings.TrimRight(b.String(), "\n"))
}

// FormatTimerLine is the single-line live display used when stdout is not a
// terminal.
func FormatTimerLine(snap tracker.Snapshot, elapsed int64) string {
	line := fmt.Sprintf("%s  %s", WorkStatusLabel(snap.Status), FormatClock(elapsed))
	if snap.IsUpdating {
		line += " (updating)"
	}
	return line
}

// FormatTransition confirms a recorded transition.
func FormatTransition(ev domain.WorkEventType, s *domain.WorkSession, elapsed int64) string {
	var verb string
	switch ev {
	case domain.EventStart:
		verb = "Started"
	case domain.EventHold:
		verb = "Put on hold"
	case domain.EventResume:
		verb = "Resumed"
	case domain.EventEnd:
		verb = "Ended"
	default:
		verb = string(ev)
	}
	return fmt.Sprintf("%s %s (current session %s, cycle %d)",
		verb, WorkStatusPill(s.Status), FormatDuration(elapsed), s.Cycle)
}
