package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

// errConfirmationRequired is returned when a destructive command runs
// without a terminal and without --yes.
var errConfirmationRequired = errors.New("confirmation required: rerun with --yes to proceed non-interactively")

// Prompter collects answers from the user. huhPrompter is the terminal
// implementation; tests substitute their own.
type Prompter interface {
	Confirm(title, description string) (bool, error)
	Settle(task *domain.DailyTask) (domain.Settlement, error)
}

func studysyncHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
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

type huhPrompter struct{}

func (huhPrompter) Confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(studysyncHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// Settle asks how many items went wrong and, optionally, which knowledge
// point they were about.
func (huhPrompter) Settle(task *domain.DailyTask) (domain.Settlement, error) {
	wrong := "0"
	var point string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("%s · %s", task.ResourceName, task.ModuleName)).
				Description(fmt.Sprintf("Target %d", task.TargetAmount)),
			huh.NewInput().
				Title("Wrong answers").
				Placeholder("0").
				Value(&wrong).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Knowledge point (optional)").
				Placeholder(task.TipTopic()).
				Value(&point),
		),
	).WithTheme(studysyncHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return domain.Settlement{}, err
	}
	n, _ := parseOptionalInt(wrong)
	return domain.Settlement{WrongCount: n, KnowledgePoint: strings.TrimSpace(point)}, nil
}

// confirm gates destructive commands. --yes skips the prompt; without a
// terminal the command refuses to run.
func confirm(app *App, title, description string) (bool, error) {
	if app.AssumeYes {
		return true, nil
	}
	if !app.interactive() {
		return false, errConfirmationRequired
	}
	return app.Prompter.Confirm(title, description)
}

func parseOptionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	v, err := parseOptionalInt(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}
