package store

import (
	"fmt"
	"strings"
	"time"
)

// Store is the single source of truth for actors, categories, sessions,
// the hourly rate, the id counters and the current selection. All
// mutation goes through its methods; every mutating method writes the
// full snapshot through to the kv store.
//
// The store is single-writer and not safe for concurrent use; the TUI
// event loop is the only caller.
type Store struct {
	kv *KV // nil means memory-only: Persist and Load no-op

	// Now supplies the current time for defaulted timestamps and
	// generated ids. Tests override it.
	Now func() time.Time

	rate       float64
	sessions   []Session
	actors     []Actor
	categories []Category

	startTime          *int64 // unix ms; nil when the timer is idle
	selectedActorID    string
	selectedCategoryID string

	nextID      int64
	nextActorID int64
}

// New builds an empty store on top of kv. kv may be nil, in which case
// the store degrades to in-memory-only operation.
func New(kv *KV) *Store {
	return &Store{
		kv:          kv,
		Now:         time.Now,
		rate:        DefaultRate,
		categories:  DefaultCategories(),
		nextID:      1,
		nextActorID: 1,
	}
}

// --- Read access ---

func (s *Store) Rate() float64          { return s.rate }
func (s *Store) Sessions() []Session    { return s.sessions }
func (s *Store) Actors() []Actor        { return s.actors }
func (s *Store) Categories() []Category { return s.categories }

func (s *Store) SelectedActorID() string    { return s.selectedActorID }
func (s *Store) SelectedCategoryID() string { return s.selectedCategoryID }

// SelectedActor resolves the current actor selection, or nil.
func (s *Store) SelectedActor() *Actor {
	if s.selectedActorID == "" {
		return nil
	}
	for i := range s.actors {
		if s.actors[i].ID == s.selectedActorID {
			return &s.actors[i]
		}
	}
	return nil
}

// SelectedCategory resolves the current category selection, or nil.
func (s *Store) SelectedCategory() *Category {
	if s.selectedCategoryID == "" {
		return nil
	}
	for i := range s.categories {
		if s.categories[i].ID == s.selectedCategoryID {
			return &s.categories[i]
		}
	}
	return nil
}

// --- Configuration ---

// SetRate sets the hourly rate. The store accepts any numeric rate;
// range checks are the settings form's concern. Existing session costs
// are never recomputed.
func (s *Store) SetRate(rate float64) {
	s.rate = rate
	s.Persist()
}

// --- Actors ---

// AddActor appends a new actor and returns its id. Names are trimmed;
// an empty name is a no-op and returns "".
func (s *Store) AddActor(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	id := fmt.Sprintf("actor-%d", s.nextActorID)
	s.nextActorID++
	s.actors = append(s.actors, Actor{
		ID:        id,
		Name:      trimmed,
		CreatedAt: s.Now().UnixMilli(),
	})
	s.Persist()
	return id
}

func (s *Store) RemoveActor(id string) {
	kept := s.actors[:0]
	for _, a := range s.actors {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.actors = kept
	if s.selectedActorID == id {
		s.selectedActorID = ""
	}
	s.Persist()
}

// SelectActor sets the actor selection; "" clears it. The choice is
// also recorded as last-used so it can be restored on the next load.
func (s *Store) SelectActor(id string) {
	s.selectedActorID = id
	s.persistLastSelected()
}

// --- Categories ---

// AddCategory appends a custom category and returns its id. Names are
// trimmed; an empty name is a no-op and returns "".
func (s *Store) AddCategory(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	id := fmt.Sprintf("category-%d", s.Now().UnixMilli())
	s.categories = append(s.categories, Category{
		ID:   id,
		Name: trimmed,
	})
	s.Persist()
	return id
}

// RemoveCategory removes a custom category. Removing a default category
// fails with ErrProtectedCategory and leaves the store unchanged.
func (s *Store) RemoveCategory(id string) error {
	for _, c := range s.categories {
		if c.ID == id && c.IsDefault {
			return ErrProtectedCategory
		}
	}
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	if s.selectedCategoryID == id {
		s.selectedCategoryID = ""
	}
	s.Persist()
	return nil
}

// SelectCategory sets the category selection; "" clears it.
func (s *Store) SelectCategory(id string) {
	s.selectedCategoryID = id
	s.persistLastSelected()
}

// --- Sessions ---

// AddSession records a session against the current selection. The cost
// is computed from the rate in effect now and never recomputed. Fails
// with ErrSelectionRequired when either selection is missing.
func (s *Store) AddSession(p AddSessionParams) (*Session, error) {
	if s.selectedActorID == "" || s.selectedCategoryID == "" {
		return nil, ErrSelectionRequired
	}

	startedAt, endedAt := p.StartedAt, p.EndedAt
	if startedAt == 0 {
		startedAt = s.Now().UnixMilli()
	}
	if endedAt == 0 {
		endedAt = s.Now().UnixMilli()
	}

	sess := Session{
		ID:         s.nextID,
		ActorID:    s.selectedActorID,
		CategoryID: s.selectedCategoryID,
		Minutes:    p.Minutes,
		Cost:       float64(p.Minutes) / 60 * s.rate,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Note:       p.Note,
	}
	s.nextID++
	s.sessions = append(s.sessions, sess)
	s.Persist()
	return &s.sessions[len(s.sessions)-1], nil
}

// ClearSessions drops the whole session collection. Actors, categories
// and the id counter are untouched.
func (s *Store) ClearSessions() {
	s.sessions = nil
	s.Persist()
}
