package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Persisted key layout. Every mutation rewrites all of the first six
// keys; the last-selected pair is written on selection changes.
const (
	keyRate         = "bb_rate"
	keySessions     = "bb_sessions"
	keyActors       = "bb_actors"
	keyCategories   = "bb_categories"
	keyNextID       = "bb_next_id"
	keyNextActorID  = "bb_next_actor_id"
	keyLastActor    = "bb_last_actor_id"
	keyLastCategory = "bb_last_category_id"
)

// Persist writes the full snapshot through to the kv store. Writes are
// fire-and-forget: a missing or failing backend degrades the store to
// memory-only rather than surfacing an error mid-action.
func (s *Store) Persist() {
	if s.kv == nil {
		return
	}
	s.kv.Set(keyRate, strconv.FormatFloat(s.rate, 'g', -1, 64))
	if b, err := json.Marshal(s.sessions); err == nil {
		s.kv.Set(keySessions, string(b))
	}
	if b, err := json.Marshal(s.actors); err == nil {
		s.kv.Set(keyActors, string(b))
	}
	if b, err := json.Marshal(s.categories); err == nil {
		s.kv.Set(keyCategories, string(b))
	}
	s.kv.Set(keyNextID, strconv.FormatInt(s.nextID, 10))
	s.kv.Set(keyNextActorID, strconv.FormatInt(s.nextActorID, 10))
}

func (s *Store) persistLastSelected() {
	if s.kv == nil {
		return
	}
	s.kv.Set(keyLastActor, s.selectedActorID)
	s.kv.Set(keyLastCategory, s.selectedCategoryID)
}

// rawSession is the duck-typed record shape found in stored snapshots.
// Older snapshots carry the end timestamp under "ended_at" and may lack
// actor, category and start fields entirely.
type rawSession struct {
	ID          int64   `json:"id"`
	ActorID     string  `json:"actorId"`
	CategoryID  string  `json:"categoryId"`
	Minutes     float64 `json:"minutes"`
	Cost        float64 `json:"cost"`
	StartedAt   *int64  `json:"startedAt"`
	EndedAt     *int64  `json:"endedAt"`
	LegacyEnded *int64  `json:"ended_at"`
	Note        string  `json:"note"`
}

// normalizeSessions resolves stored records to the current shape:
// the legacy end field wins over endedAt, a missing start defaults to
// the resolved end, a missing actor maps to the legacy sentinel, a
// missing category to the first default category, and records without
// a usable id are dropped.
func normalizeSessions(raw []rawSession, nowMs int64) []Session {
	fallbackCategory := defaultCategories[0].ID

	var out []Session
	for _, r := range raw {
		if r.ID == 0 {
			continue
		}
		endedAt := nowMs
		switch {
		case r.LegacyEnded != nil:
			endedAt = *r.LegacyEnded
		case r.EndedAt != nil:
			endedAt = *r.EndedAt
		}
		startedAt := endedAt
		if r.StartedAt != nil {
			startedAt = *r.StartedAt
		}
		actorID := r.ActorID
		if actorID == "" {
			actorID = LegacyActorID
		}
		categoryID := r.CategoryID
		if categoryID == "" {
			categoryID = fallbackCategory
		}
		out = append(out, Session{
			ID:         r.ID,
			ActorID:    actorID,
			CategoryID: categoryID,
			Minutes:    int(r.Minutes),
			Cost:       r.Cost,
			StartedAt:  startedAt,
			EndedAt:    endedAt,
			Note:       r.Note,
		})
	}
	return out
}

// ensureLegacyActor synthesizes the legacy actor when normalization
// produced sessions referencing it and no such actor is stored.
func (s *Store) ensureLegacyActor() {
	needed := false
	for _, sess := range s.sessions {
		if sess.ActorID == LegacyActorID {
			needed = true
			break
		}
	}
	if !needed {
		return
	}
	for _, a := range s.actors {
		if a.ID == LegacyActorID {
			return
		}
	}
	s.actors = append([]Actor{{ID: LegacyActorID, Name: "Legacy", CreatedAt: 0}}, s.actors...)
}

// Load replaces the in-memory state with the stored snapshot. Absent
// keys leave the corresponding default in place. Categories are merged,
// not overwritten: the default set is always present exactly once, with
// stored custom categories appended after it. A nil kv is a no-op.
func (s *Store) Load() error {
	if s.kv == nil {
		return nil
	}

	if v, ok, err := s.kv.Get(keyRate); err != nil {
		return fmt.Errorf("load rate: %w", err)
	} else if ok {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			s.rate = rate
		}
	}

	if v, ok, err := s.kv.Get(keyActors); err != nil {
		return fmt.Errorf("load actors: %w", err)
	} else if ok {
		var actors []Actor
		if err := json.Unmarshal([]byte(v), &actors); err != nil {
			return fmt.Errorf("decode actors: %w", err)
		}
		s.actors = actors
	}

	if v, ok, err := s.kv.Get(keyCategories); err != nil {
		return fmt.Errorf("load categories: %w", err)
	} else if ok {
		var stored []Category
		if err := json.Unmarshal([]byte(v), &stored); err != nil {
			return fmt.Errorf("decode categories: %w", err)
		}
		merged := DefaultCategories()
		for _, c := range stored {
			if !c.IsDefault {
				merged = append(merged, c)
			}
		}
		s.categories = merged
	}

	if v, ok, err := s.kv.Get(keySessions); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	} else if ok {
		var raw []rawSession
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return fmt.Errorf("decode sessions: %w", err)
		}
		s.sessions = normalizeSessions(raw, s.Now().UnixMilli())
	}

	if v, ok, _ := s.kv.Get(keyNextID); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.nextID = n
		}
	}
	if v, ok, _ := s.kv.Get(keyNextActorID); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.nextActorID = n
		}
	}

	s.ensureLegacyActor()
	s.restoreSelection()
	return nil
}

// restoreSelection re-selects the last-used actor and category when
// they still exist; with no usable category selection the first
// category becomes selected so the timer is usable immediately.
func (s *Store) restoreSelection() {
	if v, ok, _ := s.kv.Get(keyLastActor); ok && v != "" {
		for _, a := range s.actors {
			if a.ID == v {
				s.selectedActorID = v
				break
			}
		}
	}
	if v, ok, _ := s.kv.Get(keyLastCategory); ok && v != "" {
		for _, c := range s.categories {
			if c.ID == v {
				s.selectedCategoryID = v
				break
			}
		}
	}
	if s.selectedCategoryID == "" && len(s.categories) > 0 {
		s.selectedCategoryID = s.categories[0].ID
	}
}
