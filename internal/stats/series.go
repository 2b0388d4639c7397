package stats

import (
	"math"
	"sort"
	"time"

	"github.com/sadopc/boomerbill/internal/store"
)

// SeriesPoint is one bucket of a time series. Key is the bucket label:
// the UTC calendar date for daily and weekly buckets, "YYYY-MM" for
// monthly ones.
type SeriesPoint struct {
	Key      string
	Sessions int
	Minutes  int
	Cost     float64
}

func buildSeries(sessions []store.Session, keyOf func(store.Session) string) []SeriesPoint {
	idx := make(map[string]int)
	var points []SeriesPoint
	for _, s := range sessions {
		key := keyOf(s)
		i, seen := idx[key]
		if !seen {
			i = len(points)
			idx[key] = i
			points = append(points, SeriesPoint{Key: key})
		}
		points[i].Sessions++
		points[i].Minutes += s.Minutes
		points[i].Cost += s.Cost
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points
}

// DailySeries buckets sessions by the UTC calendar date of their start.
func DailySeries(sessions []store.Session) []SeriesPoint {
	return buildSeries(sessions, func(s store.Session) string {
		return time.UnixMilli(s.StartedAt).UTC().Format("2006-01-02")
	})
}

// WeeklySeries buckets by the local Sunday week start, labeled with
// that instant's UTC date.
func WeeklySeries(sessions []store.Session) []SeriesPoint {
	return buildSeries(sessions, func(s store.Session) string {
		return StartOfWeek(time.UnixMilli(s.StartedAt)).UTC().Format("2006-01-02")
	})
}

// MonthlySeries buckets by the local month start, labeled "YYYY-MM".
func MonthlySeries(sessions []store.Session) []SeriesPoint {
	return buildSeries(sessions, func(s store.Session) string {
		return StartOfMonth(time.UnixMilli(s.StartedAt)).UTC().Format("2006-01")
	})
}

// HourPattern aggregates sessions started in one local hour of day.
type HourPattern struct {
	Hour         int
	Sessions     int
	TotalMinutes int
	TotalCost    float64
	AvgMinutes   float64
	AvgCost      float64
}

// HourlyPatterns reports per-hour totals and averages for the hours
// that have any sessions, ordered by hour.
func HourlyPatterns(sessions []store.Session) []HourPattern {
	byHour := make(map[int]*HourPattern)
	for _, s := range sessions {
		hour := time.UnixMilli(s.StartedAt).Hour()
		p, ok := byHour[hour]
		if !ok {
			p = &HourPattern{Hour: hour}
			byHour[hour] = p
		}
		p.Sessions++
		p.TotalMinutes += s.Minutes
		p.TotalCost += s.Cost
	}

	out := make([]HourPattern, 0, len(byHour))
	for _, p := range byHour {
		p.AvgMinutes = float64(p.TotalMinutes) / float64(p.Sessions)
		p.AvgCost = p.TotalCost / float64(p.Sessions)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// DayPattern aggregates sessions started on one local weekday
// (0 = Sunday).
type DayPattern struct {
	Day          int
	DayName      string
	Sessions     int
	TotalMinutes int
	TotalCost    float64
	AvgMinutes   float64
	AvgCost      float64
}

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func DayOfWeekPatterns(sessions []store.Session) []DayPattern {
	byDay := make(map[int]*DayPattern)
	for _, s := range sessions {
		day := int(time.UnixMilli(s.StartedAt).Weekday())
		p, ok := byDay[day]
		if !ok {
			p = &DayPattern{Day: day, DayName: dayNames[day]}
			byDay[day] = p
		}
		p.Sessions++
		p.TotalMinutes += s.Minutes
		p.TotalCost += s.Cost
	}

	out := make([]DayPattern, 0, len(byDay))
	for _, p := range byDay {
		p.AvgMinutes = float64(p.TotalMinutes) / float64(p.Sessions)
		p.AvgCost = p.TotalCost / float64(p.Sessions)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// DurationBucket is one bin of the session length histogram. Bins are
// half-open [Min, Max) except the last, which is unbounded above.
type DurationBucket struct {
	Label        string
	Min          int
	Max          int
	Count        int
	TotalMinutes int
	TotalCost    float64
	Percentage   float64
}

// DurationDistribution sorts sessions into fixed length bins and
// reports each bin's share of the total session count. All bins are
// returned even when empty.
func DurationDistribution(sessions []store.Session) []DurationBucket {
	buckets := []DurationBucket{
		{Label: "0-5 min", Min: 0, Max: 5},
		{Label: "5-15 min", Min: 5, Max: 15},
		{Label: "15-30 min", Min: 15, Max: 30},
		{Label: "30-60 min", Min: 30, Max: 60},
		{Label: "60+ min", Min: 60, Max: math.MaxInt},
	}

	for _, s := range sessions {
		for i := range buckets {
			if s.Minutes >= buckets[i].Min && s.Minutes < buckets[i].Max {
				buckets[i].Count++
				buckets[i].TotalMinutes += s.Minutes
				buckets[i].TotalCost += s.Cost
				break
			}
		}
	}

	if len(sessions) > 0 {
		for i := range buckets {
			buckets[i].Percentage = float64(buckets[i].Count) / float64(len(sessions)) * 100
		}
	}
	return buckets
}

// PeakDay is the costliest calendar day of the current month.
type PeakDay struct {
	Day   string
	Cost  float64
	Count int
}

// PeakDayThisMonth scans the current month's sessions grouped by the
// local calendar day they started on and returns the day with the
// highest cost. Ties keep the first-encountered day; no sessions this
// month yields the zero value.
func PeakDayThisMonth(sessions []store.Session, now time.Time) PeakDay {
	monthStart := StartOfMonth(now).UnixMilli()

	idx := make(map[string]int)
	var days []PeakDay
	for _, s := range sessions {
		if s.EndedAt < monthStart {
			continue
		}
		day := time.UnixMilli(s.StartedAt).Format("Mon Jan 02 2006")
		i, seen := idx[day]
		if !seen {
			i = len(days)
			idx[day] = i
			days = append(days, PeakDay{Day: day})
		}
		days[i].Cost += s.Cost
		days[i].Count++
	}

	var max PeakDay
	for _, d := range days {
		if d.Cost > max.Cost {
			max = d
		}
	}
	return max
}
