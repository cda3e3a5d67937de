package store_test

import (
	"testing"

	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/store"
)

func TestPreferences_Defaults(t *testing.T) {
	prefs := store.NewPreferences(store.NewFileBackend(t.TempDir()))

	if got := prefs.SortMode(); got != model.SortFrequency {
		t.Errorf("default sort mode = %v, want frequency", got)
	}
	if got := prefs.Metric(); got != model.MetricVisitors {
		t.Errorf("default metric = %v, want visitors", got)
	}
	if got := prefs.Period(); got != model.PeriodDay {
		t.Errorf("default period = %v, want 24h", got)
	}
	if prefs.SortBarVisible() {
		t.Error("sort bar should default to hidden")
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	prefs := store.NewPreferences(store.NewFileBackend(t.TempDir()))

	if err := prefs.SetSortMode(model.SortGrouping); err != nil {
		t.Fatalf("failed to set sort mode: %v", err)
	}
	if err := prefs.SetMetric(model.MetricPageviews); err != nil {
		t.Fatalf("failed to set metric: %v", err)
	}
	if err := prefs.SetPeriod(model.PeriodMonth); err != nil {
		t.Fatalf("failed to set period: %v", err)
	}
	if err := prefs.SetSortBarVisible(true); err != nil {
		t.Fatalf("failed to set sort bar visibility: %v", err)
	}

	if got := prefs.SortMode(); got != model.SortGrouping {
		t.Errorf("sort mode = %v, want grouping", got)
	}
	if got := prefs.Metric(); got != model.MetricPageviews {
		t.Errorf("metric = %v, want pageviews", got)
	}
	if got := prefs.Period(); got != model.PeriodMonth {
		t.Errorf("period = %v, want month", got)
	}
	if !prefs.SortBarVisible() {
		t.Error("sort bar should be visible")
	}
}

func TestPreferences_CorruptValueFallsBack(t *testing.T) {
	backend := store.NewFileBackend(t.TempDir())
	prefs := store.NewPreferences(backend)

	if err := backend.Set(store.KeySortMode, []byte("???")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	if err := backend.Set(store.KeySortBar, []byte("maybe")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	if got := prefs.SortMode(); got != model.DefaultSortMode {
		t.Errorf("corrupt sort mode = %v, want default", got)
	}
	if prefs.SortBarVisible() {
		t.Error("corrupt sort bar value should fall back to hidden")
	}
}
