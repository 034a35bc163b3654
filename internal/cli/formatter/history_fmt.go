package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/worklog"
)

// FormatWorkHistory renders the day-grouped log, newest day first, followed
// by per-member totals. memberNames maps member IDs to names.
func FormatWorkHistory(h *contract.WorkHistory, memberNames map[string]string) string {
	if len(h.Days) == 0 {
		return Dim("No work recorded in this window.")
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	name := func(id string) string {
		if n, ok := memberNames[id]; ok {
			return n
		}
		return ShortID(id)
	}

	var b strings.Builder
	for i, day := range h.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf("%s  %s", day.Date.Format("Mon 2006-01-02"), StyleGreen.Render(FormatDuration(day.TotalSeconds)))
		b.WriteString(StyleHeader.Render(title))
		b.WriteString("\n")

		rows := make([][]string, 0, len(day.Segments))
		for _, seg := range day.Segments {
			end := StyleGreen.Render("running")
			if seg.EndAt != nil {
				end = seg.EndAt.In(loc).Format("15:04")
			}
			rows = append(rows, []string{
				name(seg.MemberID),
				seg.StartAt.In(loc).Format("15:04"),
				end,
				FormatDuration(worklog.SegmentSeconds(seg, h.GeneratedAt)),
				Truncate(seg.Note, 48),
			})
		}
		b.WriteString(RenderTable([]string{"MEMBER", "FROM", "TO", "TIME", "NOTE"}, rows))
	}

	if len(h.MemberTotals) > 0 {
		ids := make([]string, 0, len(h.MemberTotals))
		for id := range h.MemberTotals {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return name(ids[i]) < name(ids[j]) })

		b.WriteString("\n")
		b.WriteString(Header("Totals"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(ids)+1)
		for _, id := range ids {
			rows = append(rows, []string{name(id), FormatDuration(h.MemberTotals[id])})
		}
		rows = append(rows, []string{Bold("All"), Bold(FormatDuration(h.TotalSeconds))})
		b.WriteString(RenderTable([]string{"MEMBER", "TIME"}, rows))
	}

	if n := len(h.Anomalies); n > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d event(s) in this log were skipped or reordered.", n)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
