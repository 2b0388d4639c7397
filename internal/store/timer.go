package store

import (
	"math"
	"time"
)

// The timer is a two-state machine (idle/running) layered on the entity
// store. It holds only the start instant; the actor/category a run is
// billed to is whatever is selected when Stop is called, not what was
// selected at Start. Live display is driven by the presentation layer
// polling CurrentDuration on its own tick.

// Running reports whether a timer run is in progress.
func (s *Store) Running() bool {
	return s.startTime != nil
}

// StartTime returns the running timer's start in unix ms, or 0 when idle.
func (s *Store) StartTime() int64 {
	if s.startTime == nil {
		return 0
	}
	return *s.startTime
}

// Start begins a timer run at now. Fails with ErrSelectionRequired
// unless both an actor and a category are selected.
func (s *Store) Start(now time.Time) error {
	if s.selectedActorID == "" || s.selectedCategoryID == "" {
		return ErrSelectionRequired
	}
	ms := now.UnixMilli()
	s.startTime = &ms
	return nil
}

// Stop ends the run at now and commits it as a session. Stopping an
// idle timer is a no-op and returns (nil, nil). The elapsed time is
// rounded to whole minutes with a floor of 1, so even a momentary run
// bills a full minute.
func (s *Store) Stop(note string, now time.Time) (*Session, error) {
	if s.startTime == nil {
		return nil, nil
	}
	if s.selectedActorID == "" || s.selectedCategoryID == "" {
		return nil, ErrSelectionRequired
	}

	started := *s.startTime
	minutes := int(math.Round(float64(now.UnixMilli()-started) / 60000))
	if minutes < 1 {
		minutes = 1
	}

	sess, err := s.AddSession(AddSessionParams{
		Minutes:   minutes,
		Note:      note,
		StartedAt: started,
		EndedAt:   now.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	s.startTime = nil
	return sess, nil
}

// CurrentDuration returns the elapsed time of the running timer, or 0
// when idle. Negative elapsed (clock moved backwards) clamps to 0.
func (s *Store) CurrentDuration(now time.Time) time.Duration {
	if s.startTime == nil {
		return 0
	}
	ms := now.UnixMilli() - *s.startTime
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}
