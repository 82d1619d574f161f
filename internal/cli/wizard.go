package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tandemHuhTheme returns a huh theme using the formatter palette.
func tandemHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// setupForm asks for the member's display name and major.
func setupForm(name, major *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Your name", "Ada Lovelace", name),
			huh.NewInput().
				Title("Major (optional)").
				Placeholder("Computer Science").
				Value(major),
		),
	).WithTheme(tandemHuhTheme()).WithShowHelp(false)
}

// projectForm collects the fields of a new project. Fields already set by
// flags are shown prefilled.
func projectForm(name, goal, deadline, code *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Project name", "Capstone", name),
			huh.NewInput().
				Title("Goal").
				Placeholder("Ship the prototype").
				Value(goal),
			dateInput("Deadline (YYYY-MM-DD, blank for none)", "", deadline),
			huh.NewInput().
				Title("Team code (blank for none)").
				Placeholder("CAP01").
				Value(code),
		),
	).WithTheme(tandemHuhTheme()).WithShowHelp(false)
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
}

// validateOptionalDate accepts empty or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalMeeting accepts empty or "YYYY-MM-DD HH:MM".
func validateOptionalMeeting(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return domain.ValidateMeetingTime(s)
}
