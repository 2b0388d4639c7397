package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/boomerbill/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewActors
	viewSessions
	viewCharts
	viewSettings
)

var viewNames = []string{"Dashboard", "Actors", "Sessions", "Charts", "Settings"}

// --- Messages ---

type timerStartedMsg struct{}

type timerStoppedMsg struct {
	session *store.Session
}

type sessionAddedMsg struct {
	session *store.Session
}

type sessionsClearedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

func trendArrow(direction string) string {
	switch direction {
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return "→"
}
