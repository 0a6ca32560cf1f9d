package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitpulse/gitpulse/internal/summary"
)

const narrativePrompt = `You are summarizing a developer's activity for a work log.
Write 2-3 short paragraphs in first person, plain prose, no headings and no bullet points.
Focus on what was worked on and the overall rhythm. Do not invent details.

Period: %s
Commits: %d across %d repositories
Lines: +%d / -%d
Active days: %d
Top languages: %s

Recent commit messages:
%s`

const maxPromptCommits = 40

// Narrator turns a WorkSummary into a short prose narrative.
type Narrator struct {
	client Client
}

// NewNarrator builds a Narrator.
func NewNarrator(client Client) *Narrator {
	return &Narrator{client: client}
}

// Narrate generates the narrative. Callers treat an error as "render the
// report without a narrative", never as fatal.
func (n *Narrator) Narrate(ctx context.Context, ws summary.WorkSummary) (string, error) {
	langs := make([]string, 0, len(ws.Stats.TopLanguages))
	for _, lang := range ws.Stats.TopLanguages {
		langs = append(langs, lang.Language)
	}

	var messages strings.Builder
	for i, c := range ws.Commits {
		if i >= maxPromptCommits {
			break
		}
		line := strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0]
		fmt.Fprintf(&messages, "- %s\n", line)
	}

	prompt := fmt.Sprintf(narrativePrompt,
		ws.Period.Label,
		ws.Stats.TotalCommits, len(ws.Repos),
		ws.Stats.TotalInsertions, ws.Stats.TotalDeletions,
		ws.Stats.ActiveDays,
		strings.Join(langs, ", "),
		messages.String(),
	)
	return n.client.Complete(ctx, prompt)
}
