package stats

import (
	"sort"

	"github.com/sadopc/boomerbill/internal/store"
)

type ActorStanding struct {
	Actor   store.Actor
	Minutes int
	Cost    float64
	Count   int
}

type CategoryStanding struct {
	Category store.Category
	Minutes  int
	Cost     float64
	Count    int
}

// ActorLeaderboard groups sessions by actor and ranks the groups by
// total cost, descending. Sessions whose actor no longer exists are
// silently excluded. Groups tie in session encounter order, so the
// sort must be stable.
func ActorLeaderboard(sessions []store.Session, actors []store.Actor) []ActorStanding {
	byID := make(map[string]store.Actor, len(actors))
	for _, a := range actors {
		byID[a.ID] = a
	}

	idx := make(map[string]int)
	var standings []ActorStanding
	for _, s := range sessions {
		actor, ok := byID[s.ActorID]
		if !ok {
			continue
		}
		i, seen := idx[actor.ID]
		if !seen {
			i = len(standings)
			idx[actor.ID] = i
			standings = append(standings, ActorStanding{Actor: actor})
		}
		standings[i].Minutes += s.Minutes
		standings[i].Cost += s.Cost
		standings[i].Count++
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Cost > standings[j].Cost
	})
	return standings
}

// CategoryLeaderboard is the category analogue, ranked by total
// minutes, descending.
func CategoryLeaderboard(sessions []store.Session, categories []store.Category) []CategoryStanding {
	byID := make(map[string]store.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	idx := make(map[string]int)
	var standings []CategoryStanding
	for _, s := range sessions {
		category, ok := byID[s.CategoryID]
		if !ok {
			continue
		}
		i, seen := idx[category.ID]
		if !seen {
			i = len(standings)
			idx[category.ID] = i
			standings = append(standings, CategoryStanding{Category: category})
		}
		standings[i].Minutes += s.Minutes
		standings[i].Cost += s.Cost
		standings[i].Count++
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Minutes > standings[j].Minutes
	})
	return standings
}

// SortedByCost returns a copy of the sessions ordered by cost,
// descending.
func SortedByCost(sessions []store.Session) []store.Session {
	out := make([]store.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cost > out[j].Cost
	})
	return out
}

// SessionDetail is a session with its foreign keys resolved to display
// names for the log view and exports.
type SessionDetail struct {
	store.Session
	ActorName    string
	CategoryName string
}

// SessionDetails resolves names ("Unknown" when the referenced entity
// is gone) and orders newest-ended first.
func SessionDetails(sessions []store.Session, actors []store.Actor, categories []store.Category) []SessionDetail {
	actorName := make(map[string]string, len(actors))
	for _, a := range actors {
		actorName[a.ID] = a.Name
	}
	categoryName := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryName[c.ID] = c.Name
	}

	out := make([]SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		d := SessionDetail{Session: s, ActorName: "Unknown", CategoryName: "Unknown"}
		if n, ok := actorName[s.ActorID]; ok {
			d.ActorName = n
		}
		if n, ok := categoryName[s.CategoryID]; ok {
			d.CategoryName = n
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndedAt > out[j].EndedAt
	})
	return out
}
