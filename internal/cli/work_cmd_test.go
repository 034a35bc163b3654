package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkCmd_HoldResumeEndAndHistory(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)
	pair := []string{"-p", "WEB01", "-m", "Robin"}

	out := mustExec(t, app, append([]string{"work", "start"}, pair...)...)
	assert.Contains(t, out, "Started")
	assert.Contains(t, out, "cycle 1")

	clk.Advance(5 * time.Minute)
	out = mustExec(t, app, append([]string{"work", "hold"}, pair...)...)
	assert.Contains(t, out, "Put on hold")
	assert.Contains(t, out, "current session 5m")

	clk.Advance(5 * time.Minute)
	mustExec(t, app, append([]string{"work", "resume"}, pair...)...)

	clk.Advance(5 * time.Minute)
	out = mustExec(t, app, append([]string{"work", "end", "--note", "Fixed layout bug"}, pair...)...)
	assert.Contains(t, out, "Ended")
	assert.Contains(t, out, "current session 10m")

	out = mustExec(t, app, append([]string{"work", "status"}, pair...)...)
	assert.Contains(t, out, "00:10:00")
	assert.Contains(t, out, "Ended")

	out = mustExec(t, app, "history", "-p", "WEB01")
	assert.Contains(t, out, "Mon 2026-03-02")
	assert.Contains(t, out, "Fixed layout bug")
	assert.Contains(t, out, "09:10")
	assert.Contains(t, out, "TOTALS")
	assert.Contains(t, out, "10m")
}

func TestWorkCmd_StartAgainBeginsNewCycle(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)

	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	clk.Advance(2 * time.Minute)
	mustExec(t, app, "work", "end", "-p", "WEB01", "-m", "Robin", "-n", "First pass")
	clk.Advance(time.Minute)

	out := mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	assert.Contains(t, out, "cycle 2")
	assert.Contains(t, out, "current session 0s")
}

func TestWorkCmd_EndWithoutNoteFailsWhenNotInteractive(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	clk.Advance(time.Minute)

	_, err := executeCmd(t, app, "work", "end", "-p", "WEB01", "-m", "Robin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDoneNoteRequired))

	out := mustExec(t, app, "work", "status", "-p", "WEB01", "-m", "Robin")
	assert.Contains(t, out, "Running", "a rejected end leaves the session running")
}

func TestWorkCmd_EndPromptsForNoteWhenInteractive(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	clk.Advance(3 * time.Minute)

	var prompted string
	app.IsInteractive = func() bool { return true }
	app.PromptNote = func(title string) (string, error) {
		prompted = title
		return "Reviewed pull request", nil
	}

	out := mustExec(t, app, "work", "end", "-p", "WEB01", "-m", "Robin")
	assert.Contains(t, out, "Ended")
	assert.Equal(t, "Done on Website", prompted)

	out = mustExec(t, app, "history", "-p", "WEB01")
	assert.Contains(t, out, "Reviewed pull request")
}

func TestWorkCmd_NoPromptForInvalidEnd(t *testing.T) {
	app, _ := testApp(t)
	seedTeam(t, app)

	app.IsInteractive = func() bool { return true }
	app.PromptNote = func(string) (string, error) {
		t.Fatal("prompted for a note although end is not allowed")
		return "", nil
	}

	_, err := executeCmd(t, app, "work", "end", "-p", "WEB01", "-m", "Robin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWorkCmd_InvalidTransitions(t *testing.T) {
	app, _ := testApp(t)
	seedTeam(t, app)

	for _, verb := range []string{"hold", "resume"} {
		_, err := executeCmd(t, app, "work", verb, "-p", "WEB01", "-m", "Robin")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, verb)
	}

	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	_, err := executeCmd(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWorkCmd_RequiresAssignment(t *testing.T) {
	app, _ := testApp(t)
	mustExec(t, app, "project", "add", "--id", "WEB01", "--name", "Website")
	mustExec(t, app, "member", "add", "--name", "Robin")

	_, err := executeCmd(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	assert.Error(t, err)
}

func TestWorkCmd_StatusByProjectAndMember(t *testing.T) {
	app, _ := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "project", "add", "--id", "APP02", "--name", "Mobile app")
	mustExec(t, app, "member", "add", "--name", "Sam")
	mustExec(t, app, "assign", "APP02", "Robin")
	mustExec(t, app, "assign", "WEB01", "Sam")
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Sam")

	out := mustExec(t, app, "work", "status", "-p", "WEB01")
	assert.Contains(t, out, "Robin")
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "Not started")

	out = mustExec(t, app, "work", "status", "-m", "Robin")
	assert.Contains(t, out, "WEB01")
	assert.Contains(t, out, "APP02")

	_, err := executeCmd(t, app, "work", "status")
	assert.ErrorContains(t, err, "--project")
}

func TestUnassignCmd_RejectsActiveSession(t *testing.T) {
	app, _ := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")

	_, err := executeCmd(t, app, "unassign", "WEB01", "Robin")
	assert.Error(t, err)

	mustExec(t, app, "work", "end", "-p", "WEB01", "-m", "Robin", "-n", "wrap")
	out := mustExec(t, app, "unassign", "WEB01", "Robin")
	assert.Contains(t, out, "Unassigned Robin")

	out = mustExec(t, app, "history", "-p", "WEB01")
	assert.Contains(t, out, "wrap", "the work log outlives the assignment")
}

func TestWorkWatchCmd_PrintsStaticLineWhenNotRunning(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	clk.Advance(90 * time.Second)
	mustExec(t, app, "work", "hold", "-p", "WEB01", "-m", "Robin")

	out := mustExec(t, app, "work", "watch", "-p", "WEB01", "-m", "Robin")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "WEB01 Website · Robin", lines[0])
	assert.Equal(t, "On hold  00:01:30", lines[1])
}

func TestHistoryCmd_MemberFilterAndWindow(t *testing.T) {
	app, clk := testApp(t)
	seedTeam(t, app)
	mustExec(t, app, "member", "add", "--name", "Sam")
	mustExec(t, app, "assign", "WEB01", "Sam")

	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Robin")
	mustExec(t, app, "work", "start", "-p", "WEB01", "-m", "Sam")
	clk.Advance(20 * time.Minute)
	mustExec(t, app, "work", "end", "-p", "WEB01", "-m", "Robin", "-n", "Robin's part")
	mustExec(t, app, "work", "end", "-p", "WEB01", "-m", "Sam", "-n", "Sam's part")

	out := mustExec(t, app, "history", "-p", "WEB01", "-m", "Sam")
	assert.Contains(t, out, "Sam's part")
	assert.NotContains(t, out, "Robin's part")

	out = mustExec(t, app, "history", "-p", "WEB01", "--from", "2026-02-01", "--to", "2026-02-28")
	assert.Contains(t, out, "No work recorded in this window.")

	out = mustExec(t, app, "history", "-p", "WEB01", "--from", "2026-03-02", "--to", "2026-03-02")
	assert.Contains(t, out, "Robin's part")
	assert.Contains(t, out, "40m")

	_, err := executeCmd(t, app, "history", "-p", "WEB01", "--days", "0")
	assert.ErrorContains(t, err, "--days")
}
