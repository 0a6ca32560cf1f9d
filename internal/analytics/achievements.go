package analytics

import (
	"github.com/gitpulse/gitpulse/internal/summary"
)

// Achievement is one qualifying badge.
type Achievement struct {
	Name        string
	Description string
}

type achievementRule struct {
	name        string
	description string
	qualifies   func(ws summary.WorkSummary, act Activity, tp TimePatterns) bool
}

// achievementRules is evaluated in declaration order; the output list
// follows this order, not significance.
var achievementRules = []achievementRule{
	{
		name:        "First Steps",
		description: "Made at least one commit",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return ws.Stats.TotalCommits >= 1
		},
	},
	{
		name:        "Half Century",
		description: "50 or more commits in the period",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return ws.Stats.TotalCommits >= 50
		},
	},
	{
		name:        "Century Club",
		description: "100 or more commits in the period",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return ws.Stats.TotalCommits >= 100
		},
	},
	{
		name:        "Marathoner",
		description: "500 or more commits in the period",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return ws.Stats.TotalCommits >= 500
		},
	},
	{
		name:        "Daily Driver",
		description: "Active on 20 or more days",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return ws.Stats.ActiveDays >= 20
		},
	},
	{
		name:        "Streaker",
		description: "A commit streak of 7 or more days",
		qualifies: func(_ summary.WorkSummary, act Activity, _ TimePatterns) bool {
			return act.LongestStreak >= 7
		},
	},
	{
		name:        "Early Bird",
		description: "10 or more commits between 5am and 9am",
		qualifies: func(_ summary.WorkSummary, _ Activity, tp TimePatterns) bool {
			return tp.EarlyBird >= 10
		},
	},
	{
		name:        "Night Owl",
		description: "10 or more commits between 10pm and 4am",
		qualifies: func(_ summary.WorkSummary, _ Activity, tp TimePatterns) bool {
			return tp.NightOwl >= 10
		},
	},
	{
		name:        "Weekend Warrior",
		description: "10 or more weekend commits",
		qualifies: func(_ summary.WorkSummary, _ Activity, tp TimePatterns) bool {
			return tp.Weekend >= 10
		},
	},
	{
		name:        "Polyglot",
		description: "Touched 3 or more languages",
		qualifies: func(ws summary.WorkSummary, _ Activity, _ TimePatterns) bool {
			return len(ws.Stats.TopLanguages) >= 3
		},
	},
}

func evaluateAchievements(ws summary.WorkSummary, act Activity, tp TimePatterns) []Achievement {
	var earned []Achievement
	for _, rule := range achievementRules {
		if rule.qualifies(ws, act, tp) {
			earned = append(earned, Achievement{Name: rule.name, Description: rule.description})
		}
	}
	return earned
}
