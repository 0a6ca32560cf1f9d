// Package analytics derives activity statistics from a WorkSummary in a
// single pass: time-of-day patterns, commit-size distribution, streaks,
// weekly rhythm, per-repository contribution and achievements.
//
// The engine is pure: it is computed once per reporting request and the
// same value is shared by every renderer, so all output paths show
// mutually consistent numbers. Empty input yields zero-valued blocks,
// never an error.
package analytics

import (
	"math"

	"github.com/gitpulse/gitpulse/internal/summary"
)

// Analytics is the derived, read-only block computed from a WorkSummary.
type Analytics struct {
	TimePatterns  TimePatterns
	CommitSizes   CommitSizes
	Activity      Activity
	Weekly        []WeekdayStat
	RepoBreakdown []RepoContribution
	Achievements  []Achievement
}

// ComprehensiveWorkSummary pairs a WorkSummary with its analytics; it is
// the input every formatter consumes. Narrative is filled in by the
// optional AI enrichment step and left empty otherwise.
type ComprehensiveWorkSummary struct {
	Summary   summary.WorkSummary
	Analytics Analytics
	Narrative string
}

// Engine computes Analytics blocks.
type Engine struct{}

// NewEngine builds an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze derives every analytics block from ws.
func (e *Engine) Analyze(ws summary.WorkSummary) Analytics {
	a := Analytics{
		TimePatterns:  computeTimePatterns(ws.Commits),
		CommitSizes:   computeCommitSizes(ws.Commits),
		Activity:      computeActivity(ws.Commits, ws.Period),
		Weekly:        computeWeekly(ws.Commits),
		RepoBreakdown: computeBreakdown(ws),
	}
	a.Achievements = evaluateAchievements(ws, a.Activity, a.TimePatterns)
	return a
}

// Comprehensive runs Analyze and bundles the result with its input.
func (e *Engine) Comprehensive(ws summary.WorkSummary) ComprehensiveWorkSummary {
	return ComprehensiveWorkSummary{Summary: ws, Analytics: e.Analyze(ws)}
}

// pct rounds part/total to an integer percentage. Percentages rounded
// independently may not sum to exactly 100; that is accepted.
func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
