package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/record"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tempoHuhTheme returns a custom huh theme using the Gruvbox palette.
func tempoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(tempoHuhTheme()).WithShowHelp(false)
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// optionalNumber accepts blank input or a non-negative number.
func optionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func hoursField(s string) error {
	_, err := record.ParseHours(s)
	if err != nil {
		return fmt.Errorf("%s", domain.UserMessage(err))
	}
	return nil
}

// wizardCredentials asks for an email and password. The password is masked.
func wizardCredentials(title string, email, password *string) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(requiredField("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(requiredField("password")),
		).Title(title),
	)
}

// wizardNewClient fills in whichever client fields are still empty.
func wizardNewClient(in *service.ClientInput) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client name").
				Value(&in.Name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Available hours").
				Description("Monthly budget; leave blank for none").
				Value(&in.AvailableHours).
				Validate(optionalNumber),
			huh.NewInput().
				Title("Category").
				Description("Optional grouping label").
				Value(&in.Category),
			huh.NewInput().
				Title("Notes").
				Value(&in.Info),
			huh.NewConfirm().
				Title("Billed?").
				Value(&in.HasFee),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hourly rate").
				Value(&in.HourlyRate).
				Validate(optionalNumber),
		).WithHideFunc(func() bool { return !in.HasFee }),
	)
}

// wizardSelectClient creates a select over the owner's clients, storing the
// chosen client's name in result.
func wizardSelectClient(clients []*domain.Client, result *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, len(clients))
	for _, c := range clients {
		label := c.Name
		if c.AvailableHours > 0 {
			label = fmt.Sprintf("%s (%s budget)", c.Name, formatter.FormatHours(c.AvailableHours))
		}
		options = append(options, huh.NewOption(label, c.Name))
	}
	return huh.NewSelect[string]().
		Title("Which client?").
		Options(options...).
		Value(result)
}

// wizardLogSession is the manual entry form. Project suggestions come from
// the projects previously logged for any of the owner's clients.
func wizardLogSession(clients []*domain.Client, projects []string, in *record.ManualInput, now time.Time) *huh.Form {
	if in.Date == "" {
		in.Date = now.Format(domain.DateLayout)
	}
	return newForm(
		huh.NewGroup(
			wizardSelectClient(clients, &in.ClientName),
			huh.NewInput().
				Title("Project").
				Suggestions(projects).
				Value(&in.ProjectName).
				Validate(requiredField("project")),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&in.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Hours").
				Value(&in.Hours).
				Validate(hoursField),
		),
	)
}

// wizardTimerTarget picks the client and project the timer will bill.
func wizardTimerTarget(clients []*domain.Client, projects []string, client, project *string) *huh.Form {
	return newForm(
		huh.NewGroup(
			wizardSelectClient(clients, client),
			huh.NewInput().
				Title("Project").
				Suggestions(projects).
				Value(project).
				Validate(requiredField("project")),
		),
	)
}
