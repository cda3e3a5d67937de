package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/store"
)

func TestRecentList_RecordVisit(t *testing.T) {
	recent := store.NewRecentList(store.NewFileBackend(t.TempDir()))

	if err := recent.RecordVisit(model.RecentLink{URL: "https://a.example", Name: "A"}); err != nil {
		t.Fatalf("failed to record visit: %v", err)
	}
	if err := recent.RecordVisit(model.RecentLink{URL: "https://b.example", Name: "B"}); err != nil {
		t.Fatalf("failed to record visit: %v", err)
	}

	recents := recent.Recents()
	if len(recents) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recents))
	}
	// Most recent first
	if recents[0].URL != "https://b.example" {
		t.Errorf("expected most recent first, got %s", recents[0].URL)
	}
	if recents[0].VisitedAt == 0 {
		t.Error("expected VisitedAt to be stamped")
	}
}

func TestRecentList_DedupKeepsLatestName(t *testing.T) {
	recent := store.NewRecentList(store.NewFileBackend(t.TempDir()))

	if err := recent.RecordVisit(model.RecentLink{URL: "https://x.example", Name: "First"}); err != nil {
		t.Fatalf("failed to record visit: %v", err)
	}
	if err := recent.RecordVisit(model.RecentLink{URL: "https://other.example", Name: "Other"}); err != nil {
		t.Fatalf("failed to record visit: %v", err)
	}
	if err := recent.RecordVisit(model.RecentLink{URL: "https://x.example", Name: "Second"}); err != nil {
		t.Fatalf("failed to record visit: %v", err)
	}

	recents := recent.Recents()
	if len(recents) != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", len(recents))
	}

	var xCount int
	for _, r := range recents {
		if r.URL == "https://x.example" {
			xCount++
		}
	}
	if xCount != 1 {
		t.Errorf("expected exactly one entry for duplicated URL, got %d", xCount)
	}
	if recents[0].URL != "https://x.example" || recents[0].Name != "Second" {
		t.Errorf("expected re-visited entry first with latest name, got %+v", recents[0])
	}
}

func TestRecentList_CapsAtTen(t *testing.T) {
	recent := store.NewRecentList(store.NewFileBackend(t.TempDir()))

	for i := 0; i < 11; i++ {
		link := model.RecentLink{
			URL:  fmt.Sprintf("https://site%d.example", i),
			Name: fmt.Sprintf("Site %d", i),
		}
		if err := recent.RecordVisit(link); err != nil {
			t.Fatalf("failed to record visit %d: %v", i, err)
		}
	}

	recents := recent.Recents()
	if len(recents) != model.RecentMax {
		t.Fatalf("expected %d entries, got %d", model.RecentMax, len(recents))
	}
	// Oldest (site0) evicted, newest (site10) first.
	if recents[0].URL != "https://site10.example" {
		t.Errorf("expected newest first, got %s", recents[0].URL)
	}
	for _, r := range recents {
		if r.URL == "https://site0.example" {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestRecentList_ResetBefore(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	recent := store.NewRecentList(backend)

	old := model.RecentLink{URL: "https://old.example", Name: "Old", VisitedAt: time.Now().Add(-2 * time.Hour).UnixMilli()}
	fresh := model.RecentLink{URL: "https://fresh.example", Name: "Fresh", VisitedAt: time.Now().Add(-5 * time.Minute).UnixMilli()}
	seed := fmt.Sprintf(`[{"url":%q,"name":"Fresh","visitedAt":%d},{"url":%q,"name":"Old","visitedAt":%d}]`,
		fresh.URL, fresh.VisitedAt, old.URL, old.VisitedAt)
	if err := backend.Set(store.KeyRecent, []byte(seed)); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	if err := recent.ResetBefore(time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	recents := recent.Recents()
	if len(recents) != 1 || recents[0].URL != "https://old.example" {
		t.Errorf("expected only the old entry to survive, got %+v", recents)
	}

	if err := recent.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(recent.Recents()) != 0 {
		t.Error("expected empty list after clear")
	}
}

func TestRecentList_CorruptDataTreatedAsEmpty(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	if err := backend.Set(store.KeyRecent, []byte(`not json at all`)); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	recent := store.NewRecentList(backend)
	if got := recent.Recents(); len(got) != 0 {
		t.Errorf("expected empty list for corrupt data, got %+v", got)
	}
}
