package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/boomerbill/internal/stats"
	"github.com/sadopc/boomerbill/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	rate       float64
	perMinute  float64
	sessions   int
	daysActive int

	formActive bool
	form       *huh.Form

	// Form value as pointer (survives value copies)
	formRate *string
}

func newSettingsModel(s *store.Store) settingsModel {
	rate := ""
	return settingsModel{
		store:    s,
		formRate: &rate,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	rate       float64
	perMinute  float64
	sessions   int
	daysActive int
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		rate := s.store.Rate()
		return settingsDataMsg{
			rate:       rate,
			perMinute:  stats.CostPerMinute(rate),
			sessions:   len(s.store.Sessions()),
			daysActive: stats.DaysActive(s.store.Sessions(), time.Now()),
		}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.rate = msg.rate
		s.perMinute = msg.perMinute
		s.sessions = msg.sessions
		s.daysActive = msg.daysActive
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formRate = strconv.FormatFloat(s.store.Rate(), 'f', -1, 64)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Hourly rate ($)").Value(s.formRate).
				Validate(func(v string) error {
					rate, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if rate < 1 {
						return fmt.Errorf("rate must be at least 1")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if rate, err := strconv.ParseFloat(strings.TrimSpace(*s.formRate), 64); err == nil && rate >= 1 {
			s.store.SetRate(rate)
		}
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to change the rate")

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-20s %s", "Hourly rate", moneyStyle.Render(formatMoney(s.rate))),
		fmt.Sprintf("  %-20s %s", "Cost per minute", highlightStyle.Render(formatMoney(s.perMinute))),
		fmt.Sprintf("  %-20s %s", "Sessions logged", highlightStyle.Render(strconv.Itoa(s.sessions))),
		fmt.Sprintf("  %-20s %s", "Days tracked", highlightStyle.Render(strconv.Itoa(s.daysActive))),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
