package store

import (
	"strconv"

	"github.com/nikbrunner/newtab/internal/model"
)

// Preferences persists the small user-facing settings. Every getter falls
// back to a documented default when the stored value is missing or corrupt.
type Preferences struct {
	backend Backend
}

// NewPreferences creates a Preferences repository over the given backend.
func NewPreferences(backend Backend) *Preferences {
	return &Preferences{backend: backend}
}

func (p *Preferences) getString(key string) string {
	data, err := p.backend.Get(key)
	if err != nil || data == nil {
		return ""
	}
	return string(data)
}

// SortMode returns the persisted sort mode, defaulting to frequency.
func (p *Preferences) SortMode() model.SortMode {
	return model.ParseSortMode(p.getString(KeySortMode))
}

// SetSortMode persists the sort mode.
func (p *Preferences) SetSortMode(m model.SortMode) error {
	return p.backend.Set(KeySortMode, []byte(m))
}

// Metric returns the persisted analytics metric, defaulting to visitors.
func (p *Preferences) Metric() model.Metric {
	return model.ParseMetric(p.getString(KeyMetric))
}

// SetMetric persists the analytics metric.
func (p *Preferences) SetMetric(m model.Metric) error {
	return p.backend.Set(KeyMetric, []byte(m))
}

// Period returns the persisted comparison period, defaulting to 24h.
func (p *Preferences) Period() model.Period {
	return model.ParsePeriod(p.getString(KeyPeriod))
}

// SetPeriod persists the comparison period.
func (p *Preferences) SetPeriod(period model.Period) error {
	return p.backend.Set(KeyPeriod, []byte(period))
}

// SortBarVisible returns whether the sort bar is shown, defaulting to false.
func (p *Preferences) SortBarVisible() bool {
	visible, err := strconv.ParseBool(p.getString(KeySortBar))
	if err != nil {
		return false
	}
	return visible
}

// SetSortBarVisible persists the sort bar visibility.
func (p *Preferences) SetSortBarVisible(visible bool) error {
	return p.backend.Set(KeySortBar, []byte(strconv.FormatBool(visible)))
}
