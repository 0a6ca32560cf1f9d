package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/gitpulse/gitpulse/internal/analytics"
)

// Text renders a colorized terminal report.
type Text struct{}

func (t *Text) Render(w io.Writer, cws analytics.ComprehensiveWorkSummary) error {
	titleColor := color.New(color.FgHiCyan, color.Bold)
	dimColor := color.New(color.FgHiBlack)
	headColor := color.New(color.FgHiWhite, color.Bold)

	ws, a := cws.Summary, cws.Analytics

	fmt.Fprintln(w)
	titleColor.Fprintf(w, "  Work Summary: %s\n", ws.Period.Label)
	dimColor.Fprintf(w, "  %s to %s\n\n",
		ws.Period.Start.Format("Jan 2, 2006"), ws.Period.End.Format("Jan 2, 2006"))

	if ws.Stats.TotalCommits == 0 {
		dimColor.Fprintln(w, "  No commits in this period.")
		fmt.Fprintln(w)
		return nil
	}

	headColor.Fprintln(w, "  Totals")
	fmt.Fprintf(w, "    Commits:       %d\n", ws.Stats.TotalCommits)
	fmt.Fprintf(w, "    Lines:         +%d / -%d\n", ws.Stats.TotalInsertions, ws.Stats.TotalDeletions)
	fmt.Fprintf(w, "    Files changed: %d\n", ws.Stats.TotalFilesChanged)
	fmt.Fprintf(w, "    Active days:   %d (%d%% consistency)\n\n",
		ws.Stats.ActiveDays, a.Activity.ConsistencyPct)

	headColor.Fprintln(w, "  Rhythm")
	fmt.Fprintf(w, "    Peak hour:     %02d:00 (%d commits)\n", a.TimePatterns.PeakHour, a.TimePatterns.PeakCount)
	fmt.Fprintf(w, "    Working hours: %d%%   Weekend: %d%%\n", a.TimePatterns.WorkingPct, a.TimePatterns.WeekendPct)
	fmt.Fprintf(w, "    Longest streak: %d days", a.Activity.LongestStreak)
	if a.Activity.BusiestDay != "" {
		fmt.Fprintf(w, "   Busiest day: %s (%d commits)", a.Activity.BusiestDay, a.Activity.BusiestDayCount)
	}
	fmt.Fprint(w, "\n\n")

	headColor.Fprintln(w, "  Weekly pattern")
	for _, day := range a.Weekly {
		fmt.Fprintf(w, "    %s  %-20s %d\n", day.Day, day.Bar, day.Count)
	}
	fmt.Fprintln(w)

	headColor.Fprintln(w, "  Commit sizes")
	fmt.Fprintf(w, "    small %d%%  medium %d%%  large %d%%  (median: %s)\n\n",
		a.CommitSizes.SmallPct, a.CommitSizes.MediumPct, a.CommitSizes.LargePct, a.CommitSizes.MedianBucket)

	if len(ws.Stats.TopLanguages) > 0 {
		headColor.Fprintln(w, "  Top languages")
		for _, lang := range ws.Stats.TopLanguages {
			fmt.Fprintf(w, "    %-20s %d changes\n", lang.Language, lang.Count)
		}
		fmt.Fprintln(w)
	}

	if len(a.RepoBreakdown) > 0 {
		headColor.Fprintln(w, "  Repositories")
		if err := writeBreakdownTable(w, a.RepoBreakdown); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(a.Achievements) > 0 {
		headColor.Fprintln(w, "  Achievements")
		for _, badge := range a.Achievements {
			fmt.Fprintf(w, "    ★ %s: %s\n", badge.Name, badge.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeBreakdownTable(w io.Writer, breakdown []analytics.RepoContribution) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repository", "Commits", "Insertions", "Deletions"})

	var data [][]string
	for _, repo := range breakdown {
		data = append(data, []string{
			repo.Name,
			strconv.Itoa(repo.Commits),
			strconv.Itoa(repo.Insertions),
			strconv.Itoa(repo.Deletions),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
