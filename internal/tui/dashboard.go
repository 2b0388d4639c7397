package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/boomerbill/internal/stats"
	"github.com/sadopc/boomerbill/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	today stats.PeriodStats
	week  stats.PeriodStats
	month stats.PeriodStats
	year  stats.PeriodStats

	todayTrend stats.Trend
	weekTrend  stats.Trend
	monthTrend stats.Trend
	yearTrend  stats.Trend

	totals     stats.Totals
	daysActive int
	avgPerDay  float64
	avgSession float64
	peak       stats.PeakDay
	summary    string

	actors []store.Actor

	// Actor picker state, shown when starting with no actor selected.
	picking      bool
	pickerCursor int
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.store.Running() }
func (d dashboardModel) elapsed() time.Duration {
	return d.store.CurrentDuration(time.Now())
}

type dashboardDataMsg struct {
	today, week, month, year                     stats.PeriodStats
	todayTrend, weekTrend, monthTrend, yearTrend stats.Trend
	totals                                       stats.Totals
	daysActive                                   int
	avgPerDay                                    float64
	avgSession                                   float64
	peak                                         stats.PeakDay
	summary                                      string
	actors                                       []store.Actor
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		sessions := d.store.Sessions()

		return dashboardDataMsg{
			today:      stats.Today(sessions, now),
			week:       stats.ThisWeek(sessions, now),
			month:      stats.ThisMonth(sessions, now),
			year:       stats.ThisYear(sessions, now),
			todayTrend: stats.TodayTrend(sessions, now),
			weekTrend:  stats.WeekTrend(sessions, now),
			monthTrend: stats.MonthTrend(sessions, now),
			yearTrend:  stats.YearTrend(sessions, now),
			totals:     stats.Sum(sessions),
			daysActive: stats.DaysActive(sessions, now),
			avgPerDay:  stats.AvgPerDay(sessions, now),
			avgSession: stats.AvgSessionMinutes(sessions),
			peak:       stats.PeakDayThisMonth(sessions, now),
			summary:    stats.WeeklySummary(sessions, now),
			actors:     d.store.Actors(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today, d.week, d.month, d.year = msg.today, msg.week, msg.month, msg.year
		d.todayTrend, d.weekTrend = msg.todayTrend, msg.weekTrend
		d.monthTrend, d.yearTrend = msg.monthTrend, msg.yearTrend
		d.totals = msg.totals
		d.daysActive = msg.daysActive
		d.avgPerDay = msg.avgPerDay
		d.avgSession = msg.avgSession
		d.peak = msg.peak
		d.summary = msg.summary
		d.actors = msg.actors
		return d, nil

	case tickMsg:
		// The view reads the timer straight from the store; a tick only
		// needs to trigger a redraw.
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.store.Running() {
				return d, nil
			}
			if len(d.actors) == 0 {
				return d, func() tea.Msg {
					return statusMsg{text: "No actors yet. Press 2 to go to Actors and add one.", isError: true}
				}
			}
			if d.store.SelectedActor() == nil {
				d.picking = true
				d.pickerCursor = 0
				return d, nil
			}
			return d.startTimer()

		case key.Matches(msg, keys.Stop):
			return d.stopTimer()
		}
	}
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < len(d.actors)-1 {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		actor := d.actors[d.pickerCursor]
		d.picking = false
		d.store.SelectActor(actor.ID)
		if d.store.SelectedCategory() == nil && len(d.store.Categories()) > 0 {
			d.store.SelectCategory(d.store.Categories()[0].ID)
		}
		return d.startTimer()
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d dashboardModel) startTimer() (dashboardModel, tea.Cmd) {
	if err := d.store.Start(time.Now()); err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return d, func() tea.Msg { return timerStartedMsg{} }
}

func (d dashboardModel) stopTimer() (dashboardModel, tea.Cmd) {
	session, err := d.store.Stop("", time.Now())
	if err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	if session == nil {
		return d, func() tea.Msg {
			return statusMsg{text: "Timer is not running"}
		}
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return timerStoppedMsg{session: session} },
	)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	timerPanel := d.renderTimerPanel(contentWidth)
	periodPanel := d.renderPeriodPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderActorPicker(contentWidth)
	} else {
		bottomPanel = d.renderTotalsPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, periodPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.store.Running() {
		elapsed := d.store.CurrentDuration(time.Now())
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatDuration(elapsed))
		indicator := errorStyle.Render("●  BILLING")

		who := "?"
		if a := d.store.SelectedActor(); a != nil {
			who = a.Name
		}
		what := "?"
		if c := d.store.SelectedCategory(); c != nil {
			what = c.Name
		}
		severity := stats.Severity(int(elapsed.Minutes()))
		detail := highlightStyle.Render(who) + mutedStyle.Render(" / "+what) +
			warningStyle.Render("  "+severity)

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			detail,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s when the tech support call starts")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderPeriodPanel(w int) string {
	title := titleStyle.Render("Time Lost")

	row := func(label string, ps stats.PeriodStats, tr stats.Trend) string {
		arrow := trendArrow(tr.Direction)
		arrowStyle := mutedStyle
		switch tr.Direction {
		case stats.TrendUp:
			arrowStyle = errorStyle
		case stats.TrendDown:
			arrowStyle = successStyle
		}
		return fmt.Sprintf("  %-10s %s %s  %s %s",
			label,
			moneyStyle.Render(fmt.Sprintf("%9s", formatMoney(ps.Cost))),
			mutedStyle.Render(fmt.Sprintf("%-8s", formatMinutes(ps.Minutes))),
			arrowStyle.Render(arrow),
			mutedStyle.Render(fmt.Sprintf("%+.0f%%", tr.PercentChange)),
		)
	}

	rows := []string{
		title,
		"",
		row("Today", d.today, d.todayTrend),
		row("This week", d.week, d.weekTrend),
		row("This month", d.month, d.monthTrend),
		row("This year", d.year, d.yearTrend),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTotalsPanel(w int) string {
	title := titleStyle.Render("All Time")

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-18s %s", "Total lost", moneyStyle.Render(formatMoney(d.totals.Cost))),
		fmt.Sprintf("  %-18s %s", "Total minutes", highlightStyle.Render(formatMinutes(d.totals.Minutes))),
		fmt.Sprintf("  %-18s %s", "Days tracked", highlightStyle.Render(fmt.Sprintf("%d", d.daysActive))),
		fmt.Sprintf("  %-18s %s", "Avg per day", highlightStyle.Render(fmt.Sprintf("%.1f min", d.avgPerDay))),
		fmt.Sprintf("  %-18s %s", "Avg session", highlightStyle.Render(fmt.Sprintf("%.1f min", d.avgSession))),
	}

	if d.peak.Day != "" {
		rows = append(rows, fmt.Sprintf("  %-18s %s %s", "Worst day",
			accentStyle.Render(d.peak.Day),
			mutedStyle.Render(fmt.Sprintf("(%s, %d sessions)", formatMoney(d.peak.Cost), d.peak.Count)),
		))
	}

	rows = append(rows, "", accentStyle.Render("  "+d.summary))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderActorPicker(w int) string {
	title := titleStyle.Render("Who is wasting your time?")

	var rows []string
	rows = append(rows, title)
	for i, a := range d.actors {
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+a.Name))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
