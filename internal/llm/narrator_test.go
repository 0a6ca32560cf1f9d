package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/internal/summary"
)

type captureClient struct {
	prompt string
	reply  string
	err    error
}

func (c *captureClient) Complete(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.reply, c.err
}

func TestNarrate_PromptContents(t *testing.T) {
	t.Parallel()

	ws := summary.WorkSummary{
		Period: summary.RollingDays(7),
		Repos:  []store.Repository{{Name: "alpha"}},
		Commits: []store.Commit{
			{Message: "add parser\n\nlong body that should not appear"},
		},
	}
	ws.Stats.TotalCommits = 1
	ws.Stats.TopLanguages = []summary.LanguageCount{{Language: "Go", Count: 3}}

	client := &captureClient{reply: "wrote a parser"}
	out, err := NewNarrator(client).Narrate(context.Background(), ws)
	require.NoError(t, err)
	assert.Equal(t, "wrote a parser", out)

	assert.Contains(t, client.prompt, "Last 7 days")
	assert.Contains(t, client.prompt, "- add parser")
	assert.NotContains(t, client.prompt, "long body")
	assert.Contains(t, client.prompt, "Go")
}

func TestNarrate_CapsCommitMessages(t *testing.T) {
	t.Parallel()

	ws := summary.WorkSummary{Period: summary.RollingDays(7)}
	for i := 0; i < maxPromptCommits+10; i++ {
		ws.Commits = append(ws.Commits, store.Commit{Message: "msg"})
	}

	client := &captureClient{}
	_, err := NewNarrator(client).Narrate(context.Background(), ws)
	require.NoError(t, err)
	assert.Equal(t, maxPromptCommits, strings.Count(client.prompt, "- msg"))
}

func TestNarrate_PropagatesError(t *testing.T) {
	t.Parallel()

	client := &captureClient{err: errors.New("quota exceeded")}
	_, err := NewNarrator(client).Narrate(context.Background(), summary.WorkSummary{})
	assert.Error(t, err)
}
