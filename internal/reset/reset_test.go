package reset_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/reset"
	"github.com/nikbrunner/newtab/internal/store"
)

func seedStore(t *testing.T, backend store.Backend, clicks map[string][]int64, recents []model.RecentLink) (*store.ClickLedger, *store.RecentList) {
	t.Helper()

	if clicks != nil {
		data, _ := json.Marshal(clicks)
		if err := backend.Set(store.KeyClicks, data); err != nil {
			t.Fatalf("failed to seed clicks: %v", err)
		}
	}
	if recents != nil {
		data, _ := json.Marshal(recents)
		if err := backend.Set(store.KeyRecent, data); err != nil {
			t.Fatalf("failed to seed recents: %v", err)
		}
	}

	ledger, err := store.NewClickLedger(backend)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return ledger, store.NewRecentList(backend)
}

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"hour", "day", "week", "all"} {
		if _, err := reset.ParseWindow(valid); err != nil {
			t.Errorf("ParseWindow(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := reset.ParseWindow("fortnight"); err == nil {
		t.Error("expected error for unknown window")
	}
}

func TestApply_HourKeepsOlderHistory(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	now := time.Now()

	ledger, recent := seedStore(t, backend,
		map[string][]int64{
			"https://z.example": {now.Add(-2 * time.Hour).UnixMilli(), now.Add(-10 * time.Minute).UnixMilli()},
		},
		[]model.RecentLink{
			{URL: "https://old.example", Name: "Old", VisitedAt: now.Add(-3 * time.Hour).UnixMilli()},
			{URL: "https://new.example", Name: "New", VisitedAt: now.Add(-time.Minute).UnixMilli()},
		},
	)

	label, err := reset.Apply(reset.Hour, ledger, recent, now)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if label != "the past hour" {
		t.Errorf("label = %q, want 'the past hour'", label)
	}

	if got := ledger.Counts()["https://z.example"]; got != 1 {
		t.Errorf("expected only the 2h-old click to survive, got %d", got)
	}

	recents := recent.Recents()
	if len(recents) != 1 || recents[0].URL != "https://old.example" {
		t.Errorf("expected only the old visit to survive, got %+v", recents)
	}
}

func TestApply_AllClearsEverything(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	now := time.Now()

	ledger, recent := seedStore(t, backend,
		map[string][]int64{"https://z.example": {now.Add(-100 * time.Hour).UnixMilli()}},
		[]model.RecentLink{{URL: "https://old.example", Name: "Old", VisitedAt: now.Add(-100 * time.Hour).UnixMilli()}},
	)

	label, err := reset.Apply(reset.All, ledger, recent, now)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if label != "all time" {
		t.Errorf("label = %q, want 'all time'", label)
	}

	if counts := ledger.Counts(); len(counts) != 0 {
		t.Errorf("expected empty ledger, got %v", counts)
	}
	if recents := recent.Recents(); len(recents) != 0 {
		t.Errorf("expected empty recents, got %v", recents)
	}
}

func TestApply_WindowDurations(t *testing.T) {
	tests := []struct {
		window reset.Window
		want   time.Duration
	}{
		{reset.Hour, time.Hour},
		{reset.Day, 24 * time.Hour},
		{reset.Week, 7 * 24 * time.Hour},
		{reset.All, 0},
	}

	for _, tt := range tests {
		if got := tt.window.Duration(); got != tt.want {
			t.Errorf("%s duration = %v, want %v", tt.window, got, tt.want)
		}
	}
}
