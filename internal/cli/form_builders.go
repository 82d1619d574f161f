package cli

import "github.com/charmbracelet/huh"

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2026-12-18"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDate)
}

// meetingInput returns a huh.Input for an optional "YYYY-MM-DD HH:MM" field.
func meetingInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-10-21 14:00").
		Value(value).
		Validate(validateOptionalMeeting)
}

// meetingForm asks for the explicit next meeting of a project.
func meetingForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			meetingInput("Next meeting (YYYY-MM-DD HH:MM, blank to clear)", value),
		),
	).WithTheme(tandemHuhTheme()).WithShowHelp(false)
}
