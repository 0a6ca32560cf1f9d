package analytics

import (
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/store"
)

const barWidth = 20

// WeekdayStat is one weekday's share of the period's commits. Pct is
// normalized to the busiest day, and Bar is a fixed-width visual
// proportional to it.
type WeekdayStat struct {
	Day   string
	Count int
	Pct   int
	Bar   string
}

// computeWeekly returns Sunday through Saturday, always all seven days.
func computeWeekly(commits []store.Commit) []WeekdayStat {
	var counts [7]int
	for _, c := range commits {
		counts[int(c.Date.Local().Weekday())]++
	}

	busiest := 0
	for _, n := range counts {
		if n > busiest {
			busiest = n
		}
	}

	weekly := make([]WeekdayStat, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		stat := WeekdayStat{Day: day.String()[:3], Count: counts[day]}
		stat.Pct = pct(counts[day], busiest)
		stat.Bar = strings.Repeat("█", stat.Pct*barWidth/100)
		weekly[day] = stat
	}
	return weekly
}
