package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	headers := []string{"ID", "NAME", "CLIENT", "STATUS", "TARGET"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		target := Dim("—")
		if p.TargetDate != nil {
			target = DueStyled(*p.TargetDate, now)
		}
		rows = append(rows, []string{
			StyleBold.Render(p.DisplayID()),
			p.Name,
			p.ClientName,
			StatusPill(p.Status),
			target,
		})
	}
	return RenderTable(headers, rows)
}

// ProjectInspectData is everything shown by `project inspect`.
type ProjectInspectData struct {
	Project   *domain.Project
	Sessions  []contract.SessionView
	Tasks     []*domain.Task
	Notes     []*domain.Note
	FollowUps []*domain.FollowUp
	Now       time.Time
}

// FormatProjectInspect renders the project dashboard: details, assigned
// members with their live session state, open tasks, requirements and notes,
// and pending follow-ups.
func FormatProjectInspect(d ProjectInspectData) string {
	p := d.Project
	var b strings.Builder

	var info strings.Builder
	fmt.Fprintf(&info, "%s  %s\n", Bold(p.Name), StatusPill(p.Status))
	if p.ClientName != "" {
		fmt.Fprintf(&info, "%s %s\n", Dim("Client:"), p.ClientName)
	}
	fmt.Fprintf(&info, "%s %s\n", Dim("Start: "), p.StartDate.Format("2006-01-02"))
	if p.TargetDate != nil {
		fmt.Fprintf(&info, "%s %s (%s)\n", Dim("Target:"), p.TargetDate.Format("2006-01-02"), DueStyled(*p.TargetDate, d.Now))
	}
	if p.Description != "" {
		fmt.Fprintf(&info, "\n%s\n", p.Description)
	}
	if total, done := taskProgress(d.Tasks); total > 0 {
		fmt.Fprintf(&info, "\n%s %s\n", Dim("Tasks:"), RenderTaskProgress(done, total, 20))
	}
	b.WriteString(RenderBox(p.DisplayID(), strings.TrimRight(info.String(), "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Team"))
	b.WriteString("\n")
	if len(d.Sessions) == 0 {
		b.WriteString(Dim("No members assigned."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatSessionList(d.Sessions, false))
	}

	var open []*domain.Task
	for _, t := range d.Tasks {
		if t.Status != domain.TaskDone && t.Status != domain.TaskArchived {
			open = append(open, t)
		}
	}
	b.WriteString("\n")
	b.WriteString(Header("Open tasks"))
	b.WriteString("\n")
	if len(open) == 0 {
		b.WriteString(Dim("Nothing open."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatTaskList(open, nil, d.Now))
	}

	var requirements, notes []*domain.Note
	for _, n := range d.Notes {
		if n.Kind == domain.NoteRequirement {
			requirements = append(requirements, n)
		} else {
			notes = append(notes, n)
		}
	}
	if len(requirements) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Requirements"))
		b.WriteString("\n")
		b.WriteString(FormatNoteList(requirements, d.Now))
	}
	if len(notes) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Notes"))
		b.WriteString("\n")
		b.WriteString(FormatNoteList(notes, d.Now))
	}

	if len(d.FollowUps) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Follow-ups"))
		b.WriteString("\n")
		b.WriteString(FormatFollowUpList(d.FollowUps, nil, d.Now))
	}

	return strings.TrimRight(b.String(), "\n")
}

func taskProgress(tasks []*domain.Task) (total, done int) {
	for _, t := range tasks {
		if t.Status == domain.TaskArchived {
			continue
		}
		total++
		if t.Status == domain.TaskDone {
			done++
		}
	}
	return total, done
}
