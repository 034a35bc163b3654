package formatter

import "github.com/alexanderramin/projectdesk/internal/domain"

// FormatMemberList renders members as a table.
func FormatMemberList(members []*domain.Member) string {
	headers := []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		status := StyleGreen.Render("active")
		if !m.Active {
			status = Dim("inactive")
		}
		rows = append(rows, []string{ShortID(m.ID), m.Name, m.Email, m.Role, status})
	}
	return RenderTable(headers, rows)
}
