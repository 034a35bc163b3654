package cli

import (
	"strings"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// deskHuhTheme returns a huh theme matching the formatter palette.
func deskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateDoneNote(s string) error {
	if strings.TrimSpace(s) == "" {
		return domain.ErrDoneNoteRequired
	}
	return nil
}

// endNoteForm collects the done note for `work end`.
func endNoteForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("What was done in this session?").
				Placeholder("Fixed layout bug").
				Value(value).
				Validate(validateDoneNote),
		),
	).WithTheme(deskHuhTheme()).WithShowHelp(false)
}

func promptEndNote(title string) (string, error) {
	var note string
	if err := endNoteForm(title, &note).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(note), nil
}

func (a *App) promptNote(title string) (string, error) {
	if a.PromptNote != nil {
		return a.PromptNote(title)
	}
	return promptEndNote(title)
}
