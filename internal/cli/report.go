package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/analytics"
	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/llm"
	"github.com/gitpulse/gitpulse/internal/render"
	"github.com/gitpulse/gitpulse/internal/summary"
)

const dateFlagLayout = "2006-01-02"

var (
	reportDays   int
	reportYear   int
	reportFrom   string
	reportTo     string
	reportAuthor string
	reportFormat string
	reportOutput string
	reportAI     bool
	reportMine   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an activity report for a time period",
	Long: `Report aggregates the synced commit history over a period and renders
totals, time-of-day patterns, commit sizes, streaks, per-repository
contribution and achievements. The default period is the last 30 days.

With --ai the report opens with a short generated narrative; this needs
a Gemini API key (GITPULSE_GEMINI_API_KEY or the config file).`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 30, "Report on the last N days")
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "Report on one calendar year")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Period start (YYYY-MM-DD, requires --to)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Period end (YYYY-MM-DD, requires --from)")
	reportCmd.Flags().StringVar(&reportAuthor, "author", "", "Only commits whose author name or email contains this")
	reportCmd.Flags().BoolVar(&reportMine, "mine", false, "Only commits by the configured git user")
	reportCmd.Flags().StringVar(&reportFormat, "format", render.FormatText, "Output format: text, markdown or json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportAI, "ai", false, "Prepend an AI-generated narrative")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	period, err := reportPeriod()
	if err != nil {
		return err
	}
	switch reportFormat {
	case render.FormatText, render.FormatMarkdown, render.FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", reportFormat)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	author := cfg.Author
	if reportAuthor != "" {
		author = reportAuthor
	}
	if reportMine {
		_, email, err := gitx.UserIdentity(".")
		if err != nil {
			return fmt.Errorf("--mine needs to run inside a git repository: %w", err)
		}
		if email == "" {
			return fmt.Errorf("--mine needs a configured git user.email")
		}
		author = email
	}

	ctx := cmd.Context()
	builder := summary.NewBuilder(db, summary.NewLanguageIndex())
	ws, err := builder.Build(ctx, period, nil, author)
	if err != nil {
		return err
	}
	cws := analytics.NewEngine().Comprehensive(ws)

	if reportAI {
		cws.Narrative = generateNarrative(ctx, cfg, ws)
	}

	return writeReport(cws)
}

// reportPeriod resolves the period flags: an explicit range wins over
// --year, which wins over the rolling default.
func reportPeriod() (summary.TimePeriod, error) {
	if reportFrom != "" || reportTo != "" {
		if reportFrom == "" || reportTo == "" {
			return summary.TimePeriod{}, fmt.Errorf("--from and --to must be used together")
		}
		start, err := time.ParseInLocation(dateFlagLayout, reportFrom, time.Local)
		if err != nil {
			return summary.TimePeriod{}, fmt.Errorf("invalid --from date: %w", err)
		}
		end, err := time.ParseInLocation(dateFlagLayout, reportTo, time.Local)
		if err != nil {
			return summary.TimePeriod{}, fmt.Errorf("invalid --to date: %w", err)
		}
		if end.Before(start) {
			return summary.TimePeriod{}, fmt.Errorf("--to is before --from")
		}
		// Make the end date inclusive.
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return summary.Custom(start, end), nil
	}
	if reportYear != 0 {
		return summary.Year(reportYear), nil
	}
	if reportDays <= 0 {
		return summary.TimePeriod{}, fmt.Errorf("--days must be positive")
	}
	return summary.RollingDays(reportDays), nil
}

// generateNarrative is best effort: a failed or unconfigured AI call
// degrades to a report without a narrative.
func generateNarrative(ctx context.Context, cfg *config.Config, ws summary.WorkSummary) string {
	if cfg.GeminiAPIKey == "" {
		logger{}.Warnf("--ai needs a Gemini API key; skipping narrative")
		return ""
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " Generating narrative..."
	if !verbose {
		sp.Start()
	}
	defer sp.Stop()

	narrator := llm.NewNarrator(llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))
	narrative, err := narrator.Narrate(ctx, ws)
	if err != nil {
		logger{}.Warnf("narrative generation failed: %v", err)
		return ""
	}
	return narrative
}

func writeReport(cws analytics.ComprehensiveWorkSummary) error {
	renderer := render.For(reportFormat)

	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return renderer.Render(f, cws)
	}

	// Markdown going to the terminal is rendered through glamour; a plain
	// dump is the fallback when that fails.
	if reportFormat == render.FormatMarkdown {
		var buf bytes.Buffer
		if err := renderer.Render(&buf, cws); err != nil {
			return err
		}
		tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if pretty, rerr := tr.Render(buf.String()); rerr == nil {
				fmt.Print(pretty)
				return nil
			}
		}
		fmt.Print(buf.String())
		return nil
	}
	return renderer.Render(os.Stdout, cws)
}
