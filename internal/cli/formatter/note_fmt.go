package formatter

import (
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

// FormatNoteList renders notes newest first as they are given.
func FormatNoteList(notes []*domain.Note, now time.Time) string {
	headers := []string{"ID", "KIND", "ADDED", "NOTE"}
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		kind := Dim(string(n.Kind))
		if n.Kind == domain.NoteRequirement {
			kind = StylePurple.Render(string(n.Kind))
		}
		rows = append(rows, []string{ShortID(n.ID), kind, HumanDate(n.CreatedAt, now), Truncate(n.Body, 64)})
	}
	return RenderTable(headers, rows)
}

// FormatFollowUpList renders follow-ups. projectNames maps project IDs to a
// display label; when nil the project column is omitted.
func FormatFollowUpList(followUps []*domain.FollowUp, projectNames map[string]string, now time.Time) string {
	headers := []string{"ID", "DUE", "SUMMARY"}
	if projectNames != nil {
		headers = append(headers, "PROJECT")
	}
	rows := make([][]string, 0, len(followUps))
	for _, f := range followUps {
		due := DueStyled(f.DueDate, now)
		if f.IsDone() {
			due = StyleGreen.Render("✔ " + f.DoneAt.Format("2006-01-02"))
		}
		row := []string{ShortID(f.ID), due, Truncate(f.Summary, 56)}
		if projectNames != nil {
			row = append(row, projectNames[f.ProjectID])
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}
