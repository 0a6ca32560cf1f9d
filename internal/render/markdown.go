package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gitpulse/gitpulse/internal/analytics"
)

// Markdown renders a report suitable for worklog files or further
// terminal rendering.
type Markdown struct{}

func (m *Markdown) Render(w io.Writer, cws analytics.ComprehensiveWorkSummary) error {
	var b strings.Builder
	ws, a := cws.Summary, cws.Analytics

	fmt.Fprintf(&b, "# Work Summary: %s\n\n", ws.Period.Label)
	fmt.Fprintf(&b, "_%s to %s_\n\n",
		ws.Period.Start.Format("Jan 2, 2006"), ws.Period.End.Format("Jan 2, 2006"))

	if cws.Narrative != "" {
		b.WriteString(cws.Narrative)
		b.WriteString("\n\n")
	}

	if ws.Stats.TotalCommits == 0 {
		b.WriteString("No commits in this period.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- **Commits**: %d\n", ws.Stats.TotalCommits)
	fmt.Fprintf(&b, "- **Lines**: +%d / -%d\n", ws.Stats.TotalInsertions, ws.Stats.TotalDeletions)
	fmt.Fprintf(&b, "- **Files changed**: %d\n", ws.Stats.TotalFilesChanged)
	fmt.Fprintf(&b, "- **Active days**: %d (%d%% consistency)\n\n",
		ws.Stats.ActiveDays, a.Activity.ConsistencyPct)

	b.WriteString("## Rhythm\n\n")
	fmt.Fprintf(&b, "- Peak hour: %02d:00 (%d commits)\n", a.TimePatterns.PeakHour, a.TimePatterns.PeakCount)
	fmt.Fprintf(&b, "- Working hours: %d%%, weekend: %d%%\n", a.TimePatterns.WorkingPct, a.TimePatterns.WeekendPct)
	fmt.Fprintf(&b, "- Longest streak: %d days\n", a.Activity.LongestStreak)
	if a.Activity.BusiestDay != "" {
		fmt.Fprintf(&b, "- Busiest day: %s (%d commits)\n", a.Activity.BusiestDay, a.Activity.BusiestDayCount)
	}
	b.WriteString("\n## Weekly pattern\n\n")
	b.WriteString("| Day | Commits | |\n|---|---|---|\n")
	for _, day := range a.Weekly {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", day.Day, day.Count, day.Bar)
	}

	b.WriteString("\n## Commit sizes\n\n")
	fmt.Fprintf(&b, "small %d%%, medium %d%%, large %d%% (median: %s)\n",
		a.CommitSizes.SmallPct, a.CommitSizes.MediumPct, a.CommitSizes.LargePct, a.CommitSizes.MedianBucket)

	if len(ws.Stats.TopLanguages) > 0 {
		b.WriteString("\n## Top languages\n\n")
		for _, lang := range ws.Stats.TopLanguages {
			fmt.Fprintf(&b, "- %s (%d changes)\n", lang.Language, lang.Count)
		}
	}
	if len(ws.Stats.TopFiles) > 0 {
		b.WriteString("\n## Most touched files\n\n")
		for _, file := range ws.Stats.TopFiles {
			fmt.Fprintf(&b, "- `%s` (%d changes)\n", file.Path, file.Count)
		}
	}

	if len(a.RepoBreakdown) > 0 {
		b.WriteString("\n## Repositories\n\n")
		b.WriteString("| Repository | Commits | Insertions | Deletions |\n|---|---|---|---|\n")
		for _, repo := range a.RepoBreakdown {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", repo.Name, repo.Commits, repo.Insertions, repo.Deletions)
		}
	}

	if len(a.Achievements) > 0 {
		b.WriteString("\n## Achievements\n\n")
		for _, badge := range a.Achievements {
			fmt.Fprintf(&b, "- **%s**: %s\n", badge.Name, badge.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
