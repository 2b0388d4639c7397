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

type sessionsModel struct {
	store  *store.Store
	width  int
	height int

	details []stats.SessionDetail
	cursor  int

	formActive bool
	form       *huh.Form
	formType   string // "manual", "clear"

	// Form field pointers (survive value copies)
	formMinutes *string
	formNote    *string
	confirm     *bool
}

func newSessionsModel(s *store.Store) sessionsModel {
	minutes, note := "", ""
	confirm := false
	return sessionsModel{
		store:       s,
		formMinutes: &minutes,
		formNote:    &note,
		confirm:     &confirm,
	}
}

func (m *sessionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type sessionsDataMsg struct {
	details []stats.SessionDetail
}

func (m sessionsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return sessionsDataMsg{
			details: stats.SessionDetails(m.store.Sessions(), m.store.Actors(), m.store.Categories()),
		}
	}
}

func (m sessionsModel) update(msg tea.Msg) (sessionsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case sessionsDataMsg:
		m.details = msg.details
		if m.cursor >= len(m.details) {
			m.cursor = max(0, len(m.details)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.details)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showManualForm()
		case key.Matches(msg, keys.Clear):
			if len(m.details) > 0 {
				return m.showClearForm()
			}
		}
	}
	return m, nil
}

func (m sessionsModel) showManualForm() (sessionsModel, tea.Cmd) {
	*m.formMinutes = ""
	*m.formNote = ""
	m.formType = "manual"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Minutes wasted").Value(m.formMinutes).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of minutes, at least 1")
					}
					return nil
				}),
			huh.NewInput().Title("Note (optional)").Value(m.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sessionsModel) showClearForm() (sessionsModel, tea.Cmd) {
	*m.confirm = false
	m.formType = "clear"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d sessions?", len(m.details))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sessionsModel) updateForm(msg tea.Msg) (sessionsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "manual":
			return m.addManualSession()
		case "clear":
			if *m.confirm {
				m.store.ClearSessions()
				return m, tea.Batch(
					m.refresh(),
					func() tea.Msg { return sessionsClearedMsg{} },
				)
			}
			return m, nil
		}
	}

	return m, cmd
}

func (m sessionsModel) addManualSession() (sessionsModel, tea.Cmd) {
	minutes, err := strconv.Atoi(strings.TrimSpace(*m.formMinutes))
	if err != nil || minutes < 1 {
		return m, nil
	}

	session, err := m.store.AddSession(store.AddSessionParams{
		Minutes: minutes,
		Note:    strings.TrimSpace(*m.formNote),
	})
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: "Select an actor and category first (tab 2)", isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return sessionAddedMsg{session: session} },
	)
}

func (m sessionsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Session")
		if m.formType == "clear" {
			title = titleStyle.Render("Clear Sessions")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Sessions")

	if len(m.details) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No sessions yet. Press n to log one manually."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-14s %-18s %6s %9s  %s",
		"When", "Actor", "Category", "Min", "Cost", "Severity"))
	rows = append(rows, header)

	visible := m.visibleRange()
	for i := visible[0]; i < visible[1]; i++ {
		d := m.details[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		when := time.UnixMilli(d.EndedAt).Local().Format("Jan 02 15:04")
		row := style.Render(fmt.Sprintf("%s%-12s %-14s %-18s %6d %9s  %s",
			cursor, when, clip(d.ActorName, 14), clip(d.CategoryName, 18),
			d.Minutes, formatMoney(d.Cost), stats.Severity(d.Minutes)))
		rows = append(rows, row)
		if i == m.cursor && d.Note != "" {
			rows = append(rows, mutedStyle.Render("      └ "+d.Note))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log manually  C: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// visibleRange keeps the cursor inside the window that fits the panel.
func (m sessionsModel) visibleRange() [2]int {
	capacity := m.height - 10
	if capacity < 3 {
		capacity = 3
	}
	if len(m.details) <= capacity {
		return [2]int{0, len(m.details)}
	}
	start := m.cursor - capacity/2
	if start < 0 {
		start = 0
	}
	end := start + capacity
	if end > len(m.details) {
		end = len(m.details)
		start = end - capacity
	}
	return [2]int{start, end}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
