package store

import (
	"encoding/json"
	"time"
)

// ClickLedger records one timestamp per link click in durable storage.
// Timestamps are unix milliseconds. Every mutation is a read-modify-write
// against the latest persisted value so rapid interleaved actions never lose
// updates.
type ClickLedger struct {
	backend Backend
}

// NewClickLedger creates a ClickLedger over the given backend and migrates
// any legacy-shaped stored data. Migration is idempotent.
func NewClickLedger(backend Backend) (*ClickLedger, error) {
	l := &ClickLedger{backend: backend}
	if err := l.migrate(time.Now()); err != nil {
		return nil, err
	}
	return l, nil
}

// load reads the persisted ledger. Corrupt or absent data yields an empty map.
func (l *ClickLedger) load() map[string][]int64 {
	data, err := l.backend.Get(KeyClicks)
	if err != nil || data == nil {
		return map[string][]int64{}
	}

	var ledger map[string][]int64
	if err := json.Unmarshal(data, &ledger); err != nil {
		return map[string][]int64{}
	}
	return ledger
}

func (l *ClickLedger) save(ledger map[string][]int64) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return l.backend.Set(KeyClicks, data)
}

// migrate rewrites the legacy encoding (url → count) into the current one
// (url → timestamp sequence). A legacy count N becomes N copies of the
// migration instant; the original click times are unrecoverable.
func (l *ClickLedger) migrate(now time.Time) error {
	data, err := l.backend.Get(KeyClicks)
	if err != nil || data == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unparsable stored value: treated as empty, nothing to migrate.
		return nil
	}

	legacy := false
	for _, v := range raw {
		var count int64
		if err := json.Unmarshal(v, &count); err == nil {
			legacy = true
			break
		}
	}
	if !legacy {
		return nil
	}

	nowMs := now.UnixMilli()
	migrated := make(map[string][]int64, len(raw))
	for url, v := range raw {
		var stamps []int64
		if err := json.Unmarshal(v, &stamps); err == nil {
			migrated[url] = stamps
			continue
		}
		var count int64
		if err := json.Unmarshal(v, &count); err == nil {
			stamps = make([]int64, count)
			for i := range stamps {
				stamps[i] = nowMs
			}
			migrated[url] = stamps
		}
	}

	return l.save(migrated)
}

// RecordClick appends the current timestamp to the URL's sequence,
// creating the sequence if absent.
func (l *ClickLedger) RecordClick(url string) error {
	ledger := l.load()
	ledger[url] = append(ledger[url], time.Now().UnixMilli())
	return l.save(ledger)
}

// Counts returns the click count for every URL with at least one recorded
// click. URLs without clicks are absent from the map.
func (l *ClickLedger) Counts() map[string]int {
	ledger := l.load()
	counts := make(map[string]int, len(ledger))
	for url, stamps := range ledger {
		if len(stamps) > 0 {
			counts[url] = len(stamps)
		}
	}
	return counts
}

// ResetBefore keeps only timestamps strictly older than cutoff and drops
// URLs left with no timestamps.
func (l *ClickLedger) ResetBefore(cutoff time.Time) error {
	cutoffMs := cutoff.UnixMilli()
	ledger := l.load()

	updated := make(map[string][]int64, len(ledger))
	for url, stamps := range ledger {
		var kept []int64
		for _, ts := range stamps {
			if ts < cutoffMs {
				kept = append(kept, ts)
			}
		}
		if len(kept) > 0 {
			updated[url] = kept
		}
	}

	return l.save(updated)
}

// Clear removes the entire ledger.
func (l *ClickLedger) Clear() error {
	return l.backend.Delete(KeyClicks)
}
