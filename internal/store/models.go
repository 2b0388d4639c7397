package store

// Timestamps are Unix milliseconds throughout, matching the persisted
// JSON snapshot format.

type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// Session is one completed billable time record. Sessions are immutable
// once created; the only bulk operation is ClearSessions.
type Session struct {
	ID         int64   `json:"id"`
	ActorID    string  `json:"actorId"`
	CategoryID string  `json:"categoryId"`
	Minutes    int     `json:"minutes"`
	Cost       float64 `json:"cost"`
	StartedAt  int64   `json:"startedAt"`
	EndedAt    int64   `json:"endedAt"`
	Note       string  `json:"note,omitempty"`
}

// AddSessionParams carries the caller-supplied parts of a new session.
// Zero StartedAt/EndedAt default to the store clock.
type AddSessionParams struct {
	Minutes   int
	Note      string
	StartedAt int64
	EndedAt   int64
}

// LegacyActorID is the sentinel assigned to sessions restored from
// snapshots that predate per-actor tracking.
const LegacyActorID = "legacy"

// DefaultRate is the hourly rate used until the user sets one.
const DefaultRate = 75

var defaultCategories = []Category{
	{ID: "wifi", Name: "WiFi Issues", Icon: "wifi", IsDefault: true},
	{ID: "printer", Name: "Printer Problems", Icon: "printer", IsDefault: true},
	{ID: "password", Name: "Password Reset", Icon: "lock", IsDefault: true},
	{ID: "email", Name: "Email Setup", Icon: "mail", IsDefault: true},
	{ID: "software", Name: "Software Install", Icon: "download", IsDefault: true},
	{ID: "general", Name: "General Tech Support", Icon: "wrench", IsDefault: true},
}

// DefaultCategories returns a fresh copy of the built-in category set.
// These are always present and can never be removed.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
