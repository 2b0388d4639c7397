package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/sadopc/boomerbill/internal/store"
)

// Totals is the unbounded all-time sum.
type Totals struct {
	Minutes int
	Cost    float64
}

func Sum(sessions []store.Session) Totals {
	var t Totals
	for _, s := range sessions {
		t.Minutes += s.Minutes
		t.Cost += s.Cost
	}
	return t
}

// FirstIncidentAt returns the earliest session end timestamp. The
// second return is false when no sessions exist.
func FirstIncidentAt(sessions []store.Session) (int64, bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	first := sessions[0].EndedAt
	for _, s := range sessions[1:] {
		if s.EndedAt < first {
			first = s.EndedAt
		}
	}
	return first, true
}

// DaysActive is the elapsed calendar days since the first-ever session
// ended, minimum 1 — not the count of distinct days with activity. A
// burst of long sessions inside one day therefore divides by 1 and can
// produce per-day averages above 24 hours; that artifact is part of
// the reported contract.
func DaysActive(sessions []store.Session, now time.Time) int {
	first, ok := FirstIncidentAt(sessions)
	if !ok {
		return 0
	}
	days := int(math.Ceil(float64(now.UnixMilli()-first) / float64(dayMs)))
	if days < 1 {
		return 1
	}
	return days
}

func AvgPerDay(sessions []store.Session, now time.Time) float64 {
	days := DaysActive(sessions, now)
	if days == 0 {
		return 0
	}
	return float64(Sum(sessions).Minutes) / float64(days)
}

func AvgPerWeek(sessions []store.Session, now time.Time) float64 {
	return AvgPerDay(sessions, now) * 7
}

func AvgPerYear(sessions []store.Session, now time.Time) float64 {
	return AvgPerDay(sessions, now) * 365
}

// AvgSessionMinutes is the mean session length across all sessions.
func AvgSessionMinutes(sessions []store.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	return float64(Sum(sessions).Minutes) / float64(len(sessions))
}

// CostPerMinute converts the hourly rate to a per-minute figure.
func CostPerMinute(rate float64) float64 {
	return rate / 60
}

// WeeklySummary sums the cost of a rolling 7x24h window (not the
// calendar week) and renders the dashboard one-liner.
func WeeklySummary(sessions []store.Session, now time.Time) string {
	cutoff := now.UnixMilli() - 7*dayMs
	var cost float64
	for _, s := range sessions {
		if s.EndedAt >= cutoff {
			cost += s.Cost
		}
	}
	return fmt.Sprintf("You lost $%.2f this week.", cost)
}
