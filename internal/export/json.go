package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/boomerbill/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Sessions   []jsonEntry `json:"sessions"`
}

type jsonEntry struct {
	ID        int64   `json:"id"`
	Actor     string  `json:"actor"`
	Category  string  `json:"category"`
	Minutes   int     `json:"minutes"`
	Cost      float64 `json:"cost"`
	StartedAt string  `json:"started_at"`
	EndedAt   string  `json:"ended_at"`
	Note      string  `json:"note,omitempty"`
}

// ToJSON writes a pretty-printed export of the session log to path,
// with actor/category names resolved the same way the CSV does.
func ToJSON(sessions []store.Session, actors []store.Actor, categories []store.Category, path string) error {
	actorName := make(map[string]string, len(actors))
	for _, a := range actors {
		actorName[a.ID] = a.Name
	}
	categoryName := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryName[c.ID] = c.Name
	}

	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		actor := actorName[s.ActorID]
		if actor == "" {
			actor = "Unknown"
		}
		category := categoryName[s.CategoryID]
		if category == "" {
			category = "Unknown"
		}
		export.Sessions = append(export.Sessions, jsonEntry{
			ID:        s.ID,
			Actor:     actor,
			Category:  category,
			Minutes:   s.Minutes,
			Cost:      s.Cost,
			StartedAt: time.UnixMilli(s.StartedAt).Local().Format(time.RFC3339),
			EndedAt:   time.UnixMilli(s.EndedAt).Local().Format(time.RFC3339),
			Note:      s.Note,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
