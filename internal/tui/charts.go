package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/boomerbill/internal/stats"
	"github.com/sadopc/boomerbill/internal/store"
)

type chartMode int

const (
	chartDaily chartMode = iota
	chartWeekly
	chartMonthly
	chartDurations
)

var chartModeNames = []string{"Daily", "Weekly", "Monthly", "Durations"}

type chartsModel struct {
	store  *store.Store
	width  int
	height int

	mode chartMode

	series     []stats.SeriesPoint
	buckets    []stats.DurationBucket
	actors     []stats.ActorStanding
	categories []stats.CategoryStanding

	chart barchart.Model
}

func newChartsModel(s *store.Store) chartsModel {
	return chartsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (c *chartsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type chartsDataMsg struct {
	series     []stats.SeriesPoint
	buckets    []stats.DurationBucket
	actors     []stats.ActorStanding
	categories []stats.CategoryStanding
}

func (c chartsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions := c.store.Sessions()

		var series []stats.SeriesPoint
		switch c.mode {
		case chartWeekly:
			series = stats.WeeklySeries(sessions)
		case chartMonthly:
			series = stats.MonthlySeries(sessions)
		default:
			series = stats.DailySeries(sessions)
		}

		return chartsDataMsg{
			series:     series,
			buckets:    stats.DurationDistribution(sessions),
			actors:     stats.ActorLeaderboard(sessions, c.store.Actors()),
			categories: stats.CategoryLeaderboard(sessions, c.store.Categories()),
		}
	}
}

func (c chartsModel) update(msg tea.Msg) (chartsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartsDataMsg:
		c.series = msg.series
		c.buckets = msg.buckets
		c.actors = msg.actors
		c.categories = msg.categories
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if c.mode > chartDaily {
				c.mode--
			}
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			if c.mode < chartDurations {
				c.mode++
			}
			return c, c.refresh()
		}
	}
	return c, nil
}

func (c *chartsModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	if c.mode == chartDurations {
		for _, b := range c.buckets {
			bars = append(bars, barchart.BarData{
				Label: b.Label,
				Values: []barchart.BarValue{{
					Name:  b.Label,
					Value: float64(b.Count),
					Style: lipgloss.NewStyle().Foreground(colorAccent),
				}},
			})
		}
	} else {
		// The chart keeps the most recent points that fit.
		points := c.series
		maxBars := chartWidth / 8
		if maxBars < 1 {
			maxBars = 1
		}
		if len(points) > maxBars {
			points = points[len(points)-maxBars:]
		}
		for _, p := range points {
			bars = append(bars, barchart.BarData{
				Label: chartLabel(c.mode, p.Key),
				Values: []barchart.BarValue{{
					Name:  p.Key,
					Value: p.Cost,
					Style: lipgloss.NewStyle().Foreground(colorPrimary),
				}},
			})
		}
	}

	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "-",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

// chartLabel shortens a series key to fit under a bar.
func chartLabel(mode chartMode, key string) string {
	if mode == chartMonthly {
		return key // "2006-01"
	}
	// "2006-01-02" -> "01-02"
	if len(key) == 10 {
		return key[5:]
	}
	return key
}

func (c chartsModel) view() string {
	w := c.width - 4

	var tabs []string
	for i, name := range chartModeNames {
		if chartMode(i) == c.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Charts"), "  ", modeTabs,
	)

	chartView := c.chart.View()
	tableView := c.renderLeaderboards(w)
	nav := mutedStyle.Render("  ←/→: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (c chartsModel) renderLeaderboards(w int) string {
	if len(c.actors) == 0 && len(c.categories) == 0 {
		return mutedStyle.Render("  No data yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %9s %6s %5s", "Actor", "Cost", "Min", "N")))
	for i, a := range c.actors {
		if i >= 3 {
			break
		}
		rows = append(rows, fmt.Sprintf("  %-20s %9s %6d %5d",
			clip(a.Actor.Name, 20), formatMoney(a.Cost), a.Minutes, a.Count))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %9s %6s %5s", "Category", "Cost", "Min", "N")))
	for i, cs := range c.categories {
		if i >= 3 {
			break
		}
		rows = append(rows, fmt.Sprintf("  %-20s %9s %6d %5d",
			clip(cs.Category.Name, 20), formatMoney(cs.Cost), cs.Minutes, cs.Count))
	}

	return strings.Join(rows, "\n")
}
