package store

import (
	"encoding/json"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// RecentList persists the capped, deduplicated most-recent-first list of
// visited destinations.
type RecentList struct {
	backend Backend
}

// NewRecentList creates a RecentList over the given backend.
func NewRecentList(backend Backend) *RecentList {
	return &RecentList{backend: backend}
}

// Recents returns the persisted entries, most recent first.
// Corrupt or absent data yields an empty list.
func (r *RecentList) Recents() []model.RecentLink {
	data, err := r.backend.Get(KeyRecent)
	if err != nil || data == nil {
		return []model.RecentLink{}
	}

	var recents []model.RecentLink
	if err := json.Unmarshal(data, &recents); err != nil {
		return []model.RecentLink{}
	}
	return recents
}

func (r *RecentList) save(recents []model.RecentLink) error {
	data, err := json.Marshal(recents)
	if err != nil {
		return err
	}
	return r.backend.Set(KeyRecent, data)
}

// RecordVisit upserts the link: an existing entry for the same URL is removed
// before the new one is prepended, and the list is trimmed to RecentMax.
// VisitedAt is stamped here.
func (r *RecentList) RecordVisit(link model.RecentLink) error {
	link.VisitedAt = time.Now().UnixMilli()

	existing := r.Recents()
	updated := make([]model.RecentLink, 0, len(existing)+1)
	updated = append(updated, link)
	for _, e := range existing {
		if e.URL != link.URL {
			updated = append(updated, e)
		}
	}

	if len(updated) > model.RecentMax {
		updated = updated[:model.RecentMax]
	}

	return r.save(updated)
}

// ResetBefore keeps only entries visited strictly before cutoff.
func (r *RecentList) ResetBefore(cutoff time.Time) error {
	cutoffMs := cutoff.UnixMilli()

	kept := []model.RecentLink{}
	for _, e := range r.Recents() {
		if e.VisitedAt < cutoffMs {
			kept = append(kept, e)
		}
	}

	return r.save(kept)
}

// Clear removes the entire list.
func (r *RecentList) Clear() error {
	return r.backend.Delete(KeyRecent)
}
