package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

func TestLink_JSONSerialization(t *testing.T) {
	tests := []struct {
		name string
		link model.Link
	}{
		{
			name: "link with all fields",
			link: model.Link{
				URL:         "https://github.com",
				Name:        "GitHub",
				Category:    "Development",
				Logo:        "https://github.com/favicon.ico",
				ProjectLink: "https://github.com/about",
				AnalyticsID: "019b4d5e-0000-7000-8000-000000000000",
				Order:       3,
			},
		},
		{
			name: "minimal link",
			link: model.Link{
				URL:      "https://news.ycombinator.com",
				Name:     "Hacker News",
				Category: "News",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.link)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Link
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got != tt.link {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tt.link)
			}
		})
	}
}

func TestRecentLink_VisitedTime(t *testing.T) {
	visited := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := model.RecentLink{URL: "https://example.com", Name: "Example", VisitedAt: visited.UnixMilli()}

	if !r.VisitedTime().Equal(visited) {
		t.Errorf("expected %v, got %v", visited, r.VisitedTime())
	}
}

func TestHasURL(t *testing.T) {
	catalog := []model.Link{
		{URL: "https://github.com", Name: "GitHub", Category: "Development"},
		{URL: "https://go.dev", Name: "Go", Category: "Development"},
	}

	if !model.HasURL(catalog, "https://go.dev") {
		t.Error("expected to find https://go.dev")
	}
	if model.HasURL(catalog, "https://gitlab.com") {
		t.Error("should not find https://gitlab.com")
	}
	if model.HasURL(nil, "https://go.dev") {
		t.Error("empty catalog should contain nothing")
	}
}

func TestSortMode_ParseAndToggle(t *testing.T) {
	tests := []struct {
		input string
		want  model.SortMode
	}{
		{"grouping", model.SortGrouping},
		{"frequency", model.SortFrequency},
		{"", model.SortFrequency},
		{"garbage", model.SortFrequency},
	}

	for _, tt := range tests {
		if got := model.ParseSortMode(tt.input); got != tt.want {
			t.Errorf("ParseSortMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if model.SortGrouping.Toggle() != model.SortFrequency {
		t.Error("grouping should toggle to frequency")
	}
	if model.SortFrequency.Toggle() != model.SortGrouping {
		t.Error("frequency should toggle to grouping")
	}
}

func TestMetric_Cycle(t *testing.T) {
	m := model.DefaultMetric
	seen := map[model.Metric]bool{}
	for i := 0; i < 3; i++ {
		seen[m] = true
		m = m.Next()
	}

	if len(seen) != 3 {
		t.Errorf("expected cycle over 3 metrics, saw %d", len(seen))
	}
	if m != model.DefaultMetric {
		t.Errorf("cycle should return to %v, got %v", model.DefaultMetric, m)
	}
}

func TestPeriod_CycleAndDuration(t *testing.T) {
	p := model.DefaultPeriod
	seen := map[model.Period]bool{}
	for i := 0; i < 3; i++ {
		seen[p] = true
		p = p.Next()
	}

	if len(seen) != 3 {
		t.Errorf("expected cycle over 3 periods, saw %d", len(seen))
	}
	if p != model.DefaultPeriod {
		t.Errorf("cycle should return to %v, got %v", model.DefaultPeriod, p)
	}

	if model.PeriodDay.Duration() != 24*time.Hour {
		t.Errorf("24h period duration wrong: %v", model.PeriodDay.Duration())
	}
	if model.PeriodWeek.Duration() != 7*24*time.Hour {
		t.Errorf("week period duration wrong: %v", model.PeriodWeek.Duration())
	}
	if model.PeriodMonth.Duration() != 30*24*time.Hour {
		t.Errorf("month period duration wrong: %v", model.PeriodMonth.Duration())
	}

	if got := model.ParsePeriod("bogus"); got != model.DefaultPeriod {
		t.Errorf("ParsePeriod fallback = %v, want %v", got, model.DefaultPeriod)
	}
}
