package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/sadopc/boomerbill/internal/store"
)

// CSV renders the whole session log. The row format is part of the
// persisted contract: actor and category resolved to names ("Unknown"
// when the entity is gone), cost fixed to two decimals, timestamps as
// raw unix milliseconds, and the note always double-quoted. Embedded
// quotes in notes are not escaped; consumers of these files already
// accept that.
func CSV(sessions []store.Session, actors []store.Actor, categories []store.Category) string {
	actorName := make(map[string]string, len(actors))
	for _, a := range actors {
		actorName[a.ID] = a.Name
	}
	categoryName := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryName[c.ID] = c.Name
	}

	rows := make([]string, 0, len(sessions)+1)
	rows = append(rows, "id,actor,category,minutes,cost,startedAt,endedAt,note")
	for _, s := range sessions {
		actor := actorName[s.ActorID]
		if actor == "" {
			actor = "Unknown"
		}
		category := categoryName[s.CategoryID]
		if category == "" {
			category = "Unknown"
		}
		rows = append(rows, fmt.Sprintf(`%d,"%s","%s",%d,%.2f,%d,%d,"%s"`,
			s.ID, actor, category, s.Minutes, s.Cost, s.StartedAt, s.EndedAt, s.Note))
	}
	return strings.Join(rows, "\n")
}

// WriteCSV writes the CSV rendering to path.
func WriteCSV(sessions []store.Session, actors []store.Actor, categories []store.Category, path string) error {
	if err := os.WriteFile(path, []byte(CSV(sessions, actors, categories)), 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
