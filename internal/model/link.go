package model

import "time"

// Link is one entry of the curated catalog.
// The catalog is loaded once at startup and treated as immutable; URL is the
// unique key every piece of engagement state hangs off.
type Link struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Logo        string `json:"logo,omitempty"`
	ProjectLink string `json:"projectLink,omitempty"`
	AnalyticsID string `json:"analyticsId,omitempty"` // Umami website id, empty = untracked
	Order       int    `json:"order"`
}

// RecentLink is one entry of the recent-destinations list.
// VisitedAt is kept in unix milliseconds to match the persisted layout.
type RecentLink struct {
	URL       string `json:"url"`
	Name      string `json:"name"`
	Logo      string `json:"logo,omitempty"`
	VisitedAt int64  `json:"visitedAt"`
}

// RecentMax caps the recent-destinations list; the oldest entry is evicted.
const RecentMax = 10

// VisitedTime returns VisitedAt as a time.Time.
func (r RecentLink) VisitedTime() time.Time {
	return time.UnixMilli(r.VisitedAt)
}

// HasURL reports whether any link in the catalog has the given URL.
func HasURL(catalog []Link, url string) bool {
	for _, l := range catalog {
		if l.URL == url {
			return true
		}
	}
	return false
}
