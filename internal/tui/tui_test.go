package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/boomerbill/internal/stats"
	"github.com/sadopc/boomerbill/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.MemoryKV()
	if err != nil {
		t.Fatalf("new memory kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return store.New(kv)
}

func withSelection(t *testing.T, s *store.Store) string {
	t.Helper()
	id := s.AddActor("Dave")
	s.SelectActor(id)
	s.SelectCategory(s.Categories()[0].ID)
	return id
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Minute, "00:01:00"},
		{90 * time.Minute, "01:30:00"},
		{25*time.Hour + 5*time.Second, "25:00:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "$0.00"},
		{56.25, "$56.25"},
		{100, "$100.00"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.v); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		m    int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{135, "2h 15m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.m); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestTrendArrow(t *testing.T) {
	if trendArrow("up") != "↑" || trendArrow("down") != "↓" || trendArrow("same") != "→" {
		t.Fatal("unexpected trend arrows")
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Fatalf("clip should not touch short strings, got %q", got)
	}
	if got := clip("a very long actor name", 10); len([]rune(got)) != 10 {
		t.Fatalf("clip should cut to width, got %q", got)
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Actors", "Sessions", "Charts", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewActors != 1 || viewSessions != 2 || viewCharts != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardInit(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)

	if d.isRunning() {
		t.Fatal("timer should not be running initially")
	}
	if d.elapsed() != 0 {
		t.Fatal("idle timer should have 0 elapsed")
	}
}

func TestDashboardStartStop(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)

	d := newDashboardModel(s)
	d, _ = d.startTimer()
	if !d.isRunning() {
		t.Fatal("timer should be running")
	}

	d, _ = d.stopTimer()
	if d.isRunning() {
		t.Fatal("timer should be stopped")
	}
	if len(s.Sessions()) != 1 {
		t.Fatal("stop should commit a session")
	}
}

func TestDashboardStartWithoutSelection(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)

	d, cmd := d.startTimer()
	if d.isRunning() {
		t.Fatal("start without a selection must not run the timer")
	}
	if cmd == nil {
		t.Fatal("a status message should be emitted")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected an error status, got %#v", msg)
	}
}

func TestDashboardStopWhenIdle(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)
	d := newDashboardModel(s)

	d, cmd := d.stopTimer()
	if cmd == nil {
		t.Fatal("expected a status command")
	}
	if _, ok := cmd().(statusMsg); !ok {
		t.Fatal("stopping an idle timer should only report status")
	}
	if len(s.Sessions()) != 0 {
		t.Fatal("no session should be created")
	}
	_ = d
}

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)
	s.AddSession(store.AddSessionParams{Minutes: 60})

	d := newDashboardModel(s)
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %#v", msg)
	}
	if data.today.Count != 1 {
		t.Fatalf("expected 1 session today, got %d", data.today.Count)
	}
	if data.totals.Cost != 75 {
		t.Fatalf("expected total 75, got %v", data.totals.Cost)
	}
	if data.daysActive != 1 {
		t.Fatalf("expected 1 active day, got %d", data.daysActive)
	}
	if !strings.Contains(data.summary, "$75.00") {
		t.Fatalf("unexpected weekly summary: %q", data.summary)
	}
}

// ============================================================
// Sessions model
// ============================================================

func TestSessionsManualEntry(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)

	m := newSessionsModel(s)
	*m.formMinutes = "25"
	*m.formNote = "printer again"

	m, cmd := m.addManualSession()
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
	if len(s.Sessions()) != 1 {
		t.Fatal("manual entry should create a session")
	}
	sess := s.Sessions()[0]
	if sess.Minutes != 25 || sess.Note != "printer again" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	_ = m
}

func TestSessionsManualEntryWithoutSelection(t *testing.T) {
	s := newTestStore(t)
	m := newSessionsModel(s)
	*m.formMinutes = "25"

	_, cmd := m.addManualSession()
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected an error status, got %#v", msg)
	}
	if len(s.Sessions()) != 0 {
		t.Fatal("no session should be created")
	}
}

func TestSessionsManualEntryBadMinutes(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)
	m := newSessionsModel(s)
	*m.formMinutes = "zero"

	m, _ = m.addManualSession()
	if len(s.Sessions()) != 0 {
		t.Fatal("unparseable minutes must not create a session")
	}
	_ = m
}

func TestSessionsVisibleRange(t *testing.T) {
	s := newTestStore(t)
	m := newSessionsModel(s)
	m.height = 40

	m.details = make([]stats.SessionDetail, 5)
	if r := m.visibleRange(); r != [2]int{0, 5} {
		t.Fatalf("short list should be fully visible, got %v", r)
	}

	m.height = 15
	m.details = make([]stats.SessionDetail, 100)
	m.cursor = 50
	r := m.visibleRange()
	if r[1]-r[0] != 5 {
		t.Fatalf("window should match panel capacity, got %v", r)
	}
	if m.cursor < r[0] || m.cursor >= r[1] {
		t.Fatalf("cursor %d outside window %v", m.cursor, r)
	}
}

func TestSessionsRefresh(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)
	s.AddSession(store.AddSessionParams{Minutes: 10})

	m := newSessionsModel(s)
	msg := m.refresh()()
	data, ok := msg.(sessionsDataMsg)
	if !ok {
		t.Fatalf("expected sessionsDataMsg, got %#v", msg)
	}
	if len(data.details) != 1 || data.details[0].ActorName != "Dave" {
		t.Fatalf("unexpected details: %+v", data.details)
	}
}

// ============================================================
// Charts model
// ============================================================

func TestChartsRefresh(t *testing.T) {
	s := newTestStore(t)
	withSelection(t, s)
	s.AddSession(store.AddSessionParams{Minutes: 30})

	c := newChartsModel(s)
	msg := c.refresh()()
	data, ok := msg.(chartsDataMsg)
	if !ok {
		t.Fatalf("expected chartsDataMsg, got %#v", msg)
	}
	if len(data.series) != 1 {
		t.Fatalf("expected 1 series point, got %d", len(data.series))
	}
	if len(data.buckets) != 5 {
		t.Fatalf("expected 5 duration buckets, got %d", len(data.buckets))
	}
	if len(data.actors) != 1 || data.actors[0].Actor.Name != "Dave" {
		t.Fatalf("unexpected actor leaderboard: %+v", data.actors)
	}
}

func TestChartsBuildChartEmpty(t *testing.T) {
	s := newTestStore(t)
	c := newChartsModel(s)
	c.width = 100
	c.height = 40

	// Must not panic with no data.
	c.buildChart()
	if c.chart.View() == "" {
		t.Fatal("chart should render a placeholder")
	}
}

func TestChartLabel(t *testing.T) {
	if got := chartLabel(chartDaily, "2024-06-12"); got != "06-12" {
		t.Fatalf("daily label = %q", got)
	}
	if got := chartLabel(chartMonthly, "2024-06"); got != "2024-06" {
		t.Fatalf("monthly label = %q", got)
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	s.SetRate(90)

	m := newSettingsModel(s)
	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("expected settingsDataMsg, got %#v", msg)
	}
	if data.rate != 90 {
		t.Fatalf("expected rate 90, got %v", data.rate)
	}
	if data.perMinute != 1.5 {
		t.Fatalf("expected 1.5 per minute, got %v", data.perMinute)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// All views render without panic
	views := []viewState{viewDashboard, viewActors, viewSessions, viewCharts, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPickerRender(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	view := app.View()
	if !strings.Contains(view, "Export Format") {
		t.Fatal("export picker should be visible")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"money", func() string { return moneyStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
