// Package summary assembles WorkSummary values: a time period, the
// repositories involved, the matching commits and their roll-up stats.
// Everything downstream (analytics, renderers, AI narration) consumes the
// summaries built here.
package summary

import (
	"fmt"
	"time"
)

// PeriodKind classifies how a TimePeriod was constructed.
type PeriodKind string

const (
	PeriodRolling PeriodKind = "rolling"
	PeriodYear    PeriodKind = "year"
	PeriodCustom  PeriodKind = "custom"
)

// TimePeriod is a closed date range with a display label. It is a pure
// query input and is never persisted.
type TimePeriod struct {
	Start time.Time
	End   time.Time
	Kind  PeriodKind
	Label string
}

// RollingDays covers the last n days ending now.
func RollingDays(n int) TimePeriod {
	end := time.Now()
	return TimePeriod{
		Start: end.AddDate(0, 0, -n),
		End:   end,
		Kind:  PeriodRolling,
		Label: fmt.Sprintf("Last %d days", n),
	}
}

// Year covers one calendar year in local time.
func Year(year int) TimePeriod {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return TimePeriod{
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
		Kind:  PeriodYear,
		Label: fmt.Sprintf("%d", year),
	}
}

// Custom covers an arbitrary range.
func Custom(start, end time.Time) TimePeriod {
	return TimePeriod{
		Start: start,
		End:   end,
		Kind:  PeriodCustom,
		Label: fmt.Sprintf("%s to %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")),
	}
}

// Days is the period length in whole calendar days, at least 1.
func (p TimePeriod) Days() int {
	days := int(p.End.Sub(p.Start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
