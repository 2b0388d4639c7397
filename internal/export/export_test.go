package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/boomerbill/internal/store"
)

var (
	testActors = []store.Actor{
		{ID: "actor-1", Name: "Dave", CreatedAt: 1},
	}
	testCategories = []store.Category{
		{ID: "wifi", Name: "WiFi Issues", IsDefault: true},
	}
)

func TestCSVHeader(t *testing.T) {
	got := CSV(nil, nil, nil)
	if got != "id,actor,category,minutes,cost,startedAt,endedAt,note" {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestCSVRow(t *testing.T) {
	sessions := []store.Session{{
		ID:         3,
		ActorID:    "actor-1",
		CategoryID: "wifi",
		Minutes:    45,
		Cost:       56.25,
		StartedAt:  1600000000000,
		EndedAt:    1600002700000,
		Note:       "router reboot",
	}}

	got := CSV(sessions, testActors, testCategories)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	want := `3,"Dave","WiFi Issues",45,56.25,1600000000000,1600002700000,"router reboot"`
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %q\nwant %q", lines[1], want)
	}
}

func TestCSVCostTwoDecimals(t *testing.T) {
	sessions := []store.Session{{ID: 1, ActorID: "actor-1", CategoryID: "wifi", Minutes: 1, Cost: 1.25}}
	got := CSV(sessions, testActors, testCategories)
	if !strings.Contains(got, ",1.25,") {
		t.Fatalf("cost should render with two decimals: %q", got)
	}

	sessions[0].Cost = 100
	got = CSV(sessions, testActors, testCategories)
	if !strings.Contains(got, ",100.00,") {
		t.Fatalf("whole costs still get two decimals: %q", got)
	}
}

func TestCSVUnknownReferences(t *testing.T) {
	sessions := []store.Session{{ID: 1, ActorID: "gone", CategoryID: "also-gone", Minutes: 5, Cost: 6.25}}

	got := CSV(sessions, testActors, testCategories)
	if !strings.Contains(got, `"Unknown","Unknown"`) {
		t.Fatalf("dangling references should render as Unknown: %q", got)
	}
}

func TestCSVNotesNotEscaped(t *testing.T) {
	// Quotes inside notes pass through verbatim. The format has always
	// worked this way and downstream consumers rely on it.
	sessions := []store.Session{{
		ID: 1, ActorID: "actor-1", CategoryID: "wifi",
		Minutes: 5, Cost: 6.25,
		Note: `said "it is broken"`,
	}}

	got := CSV(sessions, testActors, testCategories)
	if !strings.Contains(got, `"said "it is broken""`) {
		t.Fatalf("notes must not be escaped: %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	sessions := []store.Session{{ID: 1, ActorID: "actor-1", CategoryID: "wifi", Minutes: 5, Cost: 6.25}}

	if err := WriteCSV(sessions, testActors, testCategories, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != CSV(sessions, testActors, testCategories) {
		t.Fatal("file content should match the in-memory rendering")
	}
}

func TestWriteCSVBadPath(t *testing.T) {
	if err := WriteCSV(nil, nil, nil, filepath.Join(t.TempDir(), "missing", "out.csv")); err == nil {
		t.Fatal("expected an error for a nonexistent directory")
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	sessions := []store.Session{
		{ID: 1, ActorID: "actor-1", CategoryID: "wifi", Minutes: 45, Cost: 56.25,
			StartedAt: 1600000000000, EndedAt: 1600002700000, Note: "router reboot"},
		{ID: 2, ActorID: "gone", CategoryID: "wifi", Minutes: 5, Cost: 6.25,
			StartedAt: 1600000000000, EndedAt: 1600000300000},
	}

	if err := ToJSON(sessions, testActors, testCategories, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Sessions   []struct {
			ID       int64   `json:"id"`
			Actor    string  `json:"actor"`
			Category string  `json:"category"`
			Minutes  int     `json:"minutes"`
			Cost     float64 `json:"cost"`
			EndedAt  string  `json:"ended_at"`
			Note     string  `json:"note"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if doc.Count != 2 || len(doc.Sessions) != 2 {
		t.Fatalf("unexpected counts: %+v", doc)
	}
	if doc.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if doc.Sessions[0].Actor != "Dave" || doc.Sessions[0].Category != "WiFi Issues" {
		t.Fatalf("names not resolved: %+v", doc.Sessions[0])
	}
	if doc.Sessions[1].Actor != "Unknown" {
		t.Fatalf("dangling actor should resolve to Unknown: %+v", doc.Sessions[1])
	}
	if doc.Sessions[0].Note != "router reboot" {
		t.Fatalf("note lost: %+v", doc.Sessions[0])
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("export should be pretty-printed")
	}
}
