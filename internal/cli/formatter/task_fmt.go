package formatter

import (
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

// FormatTaskList renders tasks as a table. memberNames maps assignee IDs to
// names; when nil the assignee column is omitted.
func FormatTaskList(tasks []*domain.Task, memberNames map[string]string, now time.Time) string {
	headers := []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE"}
	if memberNames != nil {
		headers = append(headers, "ASSIGNEE")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := Dim("—")
		switch {
		case t.Status == domain.TaskDone && t.CompletedAt != nil:
			due = Dim("done " + t.CompletedAt.Format("2006-01-02"))
		case t.DueDate != nil:
			due = DueStyled(*t.DueDate, now)
		}
		row := []string{
			ShortID(t.ID),
			Truncate(t.Title, 48),
			TaskStatusPill(t.Status),
			PriorityLabel(t.Priority),
			due,
		}
		if memberNames != nil {
			assignee := Dim("—")
			if t.AssigneeID != nil {
				if name, ok := memberNames[*t.AssigneeID]; ok {
					assignee = name
				} else {
					assignee = ShortID(*t.AssigneeID)
				}
			}
			row = append(row, assignee)
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}
