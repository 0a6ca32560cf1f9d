package analytics

import (
	"sort"
	"time"

	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/internal/summary"
)

const dayFormat = "2006-01-02"

// Activity covers streaks and consistency over the period.
type Activity struct {
	// LongestStreak is the longest run of consecutive calendar days with
	// at least one commit.
	LongestStreak int
	// BusiestDay is the date with the most commits (first encountered
	// wins ties) and its count.
	BusiestDay      string
	BusiestDayCount int
	// ConsistencyPct is active days over total days in the period.
	ConsistencyPct int
}

func computeActivity(commits []store.Commit, period summary.TimePeriod) Activity {
	var act Activity
	if len(commits) == 0 {
		return act
	}

	perDay := make(map[string]int)
	for _, c := range commits {
		day := c.Date.Local().Format(dayFormat)
		perDay[day]++
		// Strict comparison keeps the first-encountered day on ties.
		if perDay[day] > act.BusiestDayCount {
			act.BusiestDayCount = perDay[day]
			act.BusiestDay = day
		}
	}

	act.LongestStreak = longestStreak(perDay)
	act.ConsistencyPct = pct(len(perDay), period.Days())
	return act
}

// longestStreak walks the active days in order; a gap of more than one
// calendar day resets the run, and ties keep the longest seen so far.
func longestStreak(perDay map[string]int) int {
	days := make([]time.Time, 0, len(perDay))
	for day := range perDay {
		t, err := time.ParseInLocation(dayFormat, day, time.Local)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		// Calendar-day adjacency, not a 24h duration: DST shifts make
		// consecutive local midnights 23 or 25 hours apart.
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
