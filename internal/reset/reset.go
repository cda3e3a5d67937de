// Package reset applies time-windowed purges to the engagement store.
// A windowed reset clears recent activity and keeps older history; "all"
// wipes everything.
package reset

import (
	"fmt"
	"time"

	"github.com/nikbrunner/newtab/internal/store"
)

// Window is the requested reset range.
type Window string

const (
	Hour Window = "hour"
	Day  Window = "day"
	Week Window = "week"
	All  Window = "all"
)

// ParseWindow maps a user-supplied string to a Window.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Hour, Day, Week, All:
		return Window(s), nil
	default:
		return "", fmt.Errorf("unknown reset window %q (use hour, day, week or all)", s)
	}
}

// Duration returns the window length. All has no duration.
func (w Window) Duration() time.Duration {
	switch w {
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	case Week:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// Label returns the human-readable range for confirmation messaging.
func (w Window) Label() string {
	switch w {
	case Hour:
		return "the past hour"
	case Day:
		return "the past 24 hours"
	case Week:
		return "the past week"
	default:
		return "all time"
	}
}

// Apply purges both the click ledger and the recent list for the window.
// For hour/day/week only activity newer than now minus the duration is
// removed; for All both stores are cleared outright. Returns the window
// label for the user-facing confirmation.
func Apply(w Window, clicks *store.ClickLedger, recent *store.RecentList, now time.Time) (string, error) {
	if w == All {
		if err := clicks.Clear(); err != nil {
			return "", err
		}
		if err := recent.Clear(); err != nil {
			return "", err
		}
		return w.Label(), nil
	}

	cutoff := now.Add(-w.Duration())
	if err := clicks.ResetBefore(cutoff); err != nil {
		return "", err
	}
	if err := recent.ResetBefore(cutoff); err != nil {
		return "", err
	}
	return w.Label(), nil
}
