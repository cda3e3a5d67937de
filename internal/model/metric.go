package model

import "time"

// Metric selects which analytics figure the overlay displays.
type Metric string

const (
	MetricVisitors  Metric = "visitors"
	MetricPageviews Metric = "pageviews"
	MetricVisits    Metric = "visits"
)

// DefaultMetric is used when nothing is persisted yet.
const DefaultMetric = MetricVisitors

// ParseMetric maps a persisted string to a Metric, falling back to the default.
func ParseMetric(s string) Metric {
	switch Metric(s) {
	case MetricVisitors, MetricPageviews, MetricVisits:
		return Metric(s)
	default:
		return DefaultMetric
	}
}

// Next cycles visitors → pageviews → visits → visitors.
func (m Metric) Next() Metric {
	switch m {
	case MetricVisitors:
		return MetricPageviews
	case MetricPageviews:
		return MetricVisits
	default:
		return MetricVisitors
	}
}

// Label returns a short display label for the metric.
func (m Metric) Label() string {
	switch m {
	case MetricPageviews:
		return "Pageviews"
	case MetricVisits:
		return "Visits"
	default:
		return "Visitors"
	}
}

// Description returns the long-form name used in tooltips and hints.
func (m Metric) Description() string {
	switch m {
	case MetricPageviews:
		return "Pageviews"
	case MetricVisits:
		return "Sessions"
	default:
		return "Unique visitors"
	}
}

// Period selects the analytics comparison window.
type Period string

const (
	PeriodDay   Period = "24h"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DefaultPeriod is used when nothing is persisted yet.
const DefaultPeriod = PeriodDay

// ParsePeriod maps a persisted string to a Period, falling back to the default.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s)
	default:
		return DefaultPeriod
	}
}

// Next cycles 24h → week → month → 24h.
func (p Period) Next() Period {
	switch p {
	case PeriodDay:
		return PeriodWeek
	case PeriodWeek:
		return PeriodMonth
	default:
		return PeriodDay
	}
}

// Duration returns the window length for the period.
func (p Period) Duration() time.Duration {
	switch p {
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Label returns a short display label for the period.
func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "7d"
	case PeriodMonth:
		return "30d"
	default:
		return "24h"
	}
}

// Description returns the long-form window description.
func (p Period) Description() string {
	switch p {
	case PeriodWeek:
		return "past 7 days"
	case PeriodMonth:
		return "past 30 days"
	default:
		return "past 24 hours"
	}
}
