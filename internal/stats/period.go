// Package stats derives every reported aggregate from the session
// collection on demand. Nothing here mutates state or caches results;
// with hundreds of sessions at most, recomputing per read is cheaper
// than keeping an invalidation scheme honest.
package stats

import (
	"time"

	"github.com/sadopc/boomerbill/internal/store"
)

const dayMs = int64(24 * 60 * 60 * 1000)

// PeriodStats aggregates the sessions ending inside a calendar period.
type PeriodStats struct {
	Minutes int
	Cost    float64
	Count   int
}

// Calendar bucketing operates on the local calendar of t's location.
// Weeks start on Sunday.

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// statsSince filters by end timestamp only; there is deliberately no
// upper bound, so a session ending in the future still counts toward
// the current period.
func statsSince(sessions []store.Session, start time.Time) PeriodStats {
	startMs := start.UnixMilli()
	var ps PeriodStats
	for _, s := range sessions {
		if s.EndedAt >= startMs {
			ps.Minutes += s.Minutes
			ps.Cost += s.Cost
			ps.Count++
		}
	}
	return ps
}

func Today(sessions []store.Session, now time.Time) PeriodStats {
	return statsSince(sessions, StartOfDay(now))
}

func ThisWeek(sessions []store.Session, now time.Time) PeriodStats {
	return statsSince(sessions, StartOfWeek(now))
}

func ThisMonth(sessions []store.Session, now time.Time) PeriodStats {
	return statsSince(sessions, StartOfMonth(now))
}

func ThisYear(sessions []store.Session, now time.Time) PeriodStats {
	return statsSince(sessions, StartOfYear(now))
}

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendSame = "same"
)

// Trend compares a period's cost against the immediately preceding
// period of the same granularity.
type Trend struct {
	Change        float64
	PercentChange float64
	Direction     string
}

func costBetween(sessions []store.Session, from, to time.Time) float64 {
	fromMs, toMs := from.UnixMilli(), to.UnixMilli()
	var cost float64
	for _, s := range sessions {
		if s.EndedAt >= fromMs && s.EndedAt < toMs {
			cost += s.Cost
		}
	}
	return cost
}

func trendVs(current, prior float64) Trend {
	change := current - prior
	// A prior of exactly zero cannot yield a ratio; report a flat 100%
	// spike for any increase so first-ever activity still trends up.
	var pct float64
	if prior == 0 {
		if change > 0 {
			pct = 100
		}
	} else {
		pct = change / prior * 100
	}
	dir := TrendSame
	switch {
	case change > 0:
		dir = TrendUp
	case change < 0:
		dir = TrendDown
	}
	return Trend{Change: change, PercentChange: pct, Direction: dir}
}

func TodayTrend(sessions []store.Session, now time.Time) Trend {
	prior := costBetween(sessions, StartOfDay(now.Add(-24*time.Hour)), StartOfDay(now))
	return trendVs(Today(sessions, now).Cost, prior)
}

func WeekTrend(sessions []store.Session, now time.Time) Trend {
	prior := costBetween(sessions, StartOfWeek(now.Add(-7*24*time.Hour)), StartOfWeek(now))
	return trendVs(ThisWeek(sessions, now).Cost, prior)
}

// MonthTrend and YearTrend locate the prior period with fixed 30- and
// 365-day offsets rather than calendar arithmetic. Near month-length
// variation and leap years the comparison window drifts; this is a
// known approximation kept for result compatibility.

func MonthTrend(sessions []store.Session, now time.Time) Trend {
	prior := costBetween(sessions, StartOfMonth(now.Add(-30*24*time.Hour)), StartOfMonth(now))
	return trendVs(ThisMonth(sessions, now).Cost, prior)
}

func YearTrend(sessions []store.Session, now time.Time) Trend {
	prior := costBetween(sessions, StartOfYear(now.Add(-365*24*time.Hour)), StartOfYear(now))
	return trendVs(ThisYear(sessions, now).Cost, prior)
}
