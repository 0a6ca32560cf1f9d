package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/analytics"
	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/internal/summary"
)

func sampleSummary() analytics.ComprehensiveWorkSummary {
	day := time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local)
	ws := summary.WorkSummary{
		Period: summary.RollingDays(30),
		Repos:  []store.Repository{{ID: 1, Name: "alpha"}},
		Commits: []store.Commit{
			{RepoID: 1, Hash: "abc", Date: day, Insertions: 10, Deletions: 2, FilesChanged: 1},
		},
	}
	ws.Stats.TotalCommits = 1
	ws.Stats.TotalInsertions = 10
	ws.Stats.TotalDeletions = 2
	ws.Stats.TotalFilesChanged = 1
	ws.Stats.ActiveDays = 1
	return analytics.NewEngine().Comprehensive(ws)
}

func TestFor_Defaults(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &Text{}, For("text"))
	assert.IsType(t, &Markdown{}, For(FormatMarkdown))
	assert.IsType(t, &JSON{}, For(FormatJSON))
	assert.IsType(t, &Text{}, For("unknown"))
}

func TestMarkdown_Render(t *testing.T) {
	t.Parallel()

	cws := sampleSummary()
	cws.Narrative = "A quiet but steady week."

	var buf bytes.Buffer
	require.NoError(t, (&Markdown{}).Render(&buf, cws))

	out := buf.String()
	assert.Contains(t, out, "# Work Summary: Last 30 days")
	assert.Contains(t, out, "A quiet but steady week.")
	assert.Contains(t, out, "| alpha | 1 | 10 | 2 |")
	assert.Contains(t, out, "First Steps")
	// Headings and badge lines stick to plain ASCII punctuation.
	assert.NotContains(t, out, "—")
}

func TestMarkdown_EmptyPeriod(t *testing.T) {
	t.Parallel()

	cws := analytics.NewEngine().Comprehensive(summary.WorkSummary{Period: summary.RollingDays(7)})

	var buf bytes.Buffer
	require.NoError(t, (&Markdown{}).Render(&buf, cws))
	assert.Contains(t, buf.String(), "No commits in this period.")
}

func TestJSON_RoundTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSON{}).Render(&buf, sampleSummary()))

	var decoded analytics.ComprehensiveWorkSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Summary.Stats.TotalCommits)
	assert.Len(t, decoded.Analytics.RepoBreakdown, 1)
}

func TestText_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Text{}).Render(&buf, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, "Work Summary: Last 30 days")
	assert.Contains(t, out, "Commits:       1")
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "—")
}
