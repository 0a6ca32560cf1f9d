package analytics

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/store"
)

// Named block boundaries, in local hours. Night wraps around midnight.
const (
	morningStart   = 5
	afternoonStart = 12
	eveningStart   = 17
	nightStart     = 21

	workdayStart = 9  // inclusive
	workdayEnd   = 17 // exclusive

	earlyBirdStart = 5
	earlyBirdEnd   = 8 // inclusive
	nightOwlStart  = 22
	nightOwlEnd    = 3 // inclusive, wrapping
)

// TimeBlock is one named slice of the day.
type TimeBlock struct {
	Name  string
	Count int
	Pct   int
}

// TimePatterns classifies commit timestamps into hourly and named-block
// histograms.
type TimePatterns struct {
	Hourly       [24]int
	Blocks       []TimeBlock
	PeakHour     int
	PeakCount    int
	WorkingHours int
	OffHours     int
	WorkingPct   int
	Weekend      int
	Weekday      int
	WeekendPct   int
	EarlyBird    int
	NightOwl     int
}

func computeTimePatterns(commits []store.Commit) TimePatterns {
	var tp TimePatterns
	for _, c := range commits {
		local := c.Date.Local()
		hour := local.Hour()
		tp.Hourly[hour]++

		if hour >= workdayStart && hour < workdayEnd && isWeekday(local.Weekday()) {
			tp.WorkingHours++
		} else {
			tp.OffHours++
		}
		if isWeekday(local.Weekday()) {
			tp.Weekday++
		} else {
			tp.Weekend++
		}
		if hour >= earlyBirdStart && hour <= earlyBirdEnd {
			tp.EarlyBird++
		}
		if hour >= nightOwlStart || hour <= nightOwlEnd {
			tp.NightOwl++
		}
	}

	total := len(commits)
	tp.WorkingPct = pct(tp.WorkingHours, total)
	tp.WeekendPct = pct(tp.Weekend, total)
	tp.Blocks = blockCounts(tp.Hourly, total)

	// Lowest hour wins ties.
	for hour := 0; hour < 24; hour++ {
		if tp.Hourly[hour] > tp.PeakCount {
			tp.PeakCount = tp.Hourly[hour]
			tp.PeakHour = hour
		}
	}
	return tp
}

func blockCounts(hourly [24]int, total int) []TimeBlock {
	blocks := []TimeBlock{
		{Name: "morning"},
		{Name: "afternoon"},
		{Name: "evening"},
		{Name: "night"},
	}
	for hour, count := range hourly {
		switch {
		case hour >= morningStart && hour < afternoonStart:
			blocks[0].Count += count
		case hour >= afternoonStart && hour < eveningStart:
			blocks[1].Count += count
		case hour >= eveningStart && hour < nightStart:
			blocks[2].Count += count
		default:
			blocks[3].Count += count
		}
	}
	for i := range blocks {
		blocks[i].Pct = pct(blocks[i].Count, total)
	}
	return blocks
}

func isWeekday(day time.Weekday) bool {
	return day != time.Saturday && day != time.Sunday
}
