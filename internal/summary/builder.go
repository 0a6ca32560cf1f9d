package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitpulse/gitpulse/internal/store"
)

const topListSize = 5

// LanguageCount is one language's share of the period's file changes.
type LanguageCount struct {
	Language string
	Count    int
}

// FileCount is one file's touch count over the period.
type FileCount struct {
	Path  string
	Count int
}

// Stats is the roll-up block of a WorkSummary.
type Stats struct {
	TotalCommits      int
	TotalInsertions   int
	TotalDeletions    int
	TotalFilesChanged int
	ActiveDays        int
	TopLanguages      []LanguageCount
	TopFiles          []FileCount
}

// WorkSummary is the ephemeral aggregate handed to the analytics engine
// and the renderers. Produced fresh per query, never persisted.
type WorkSummary struct {
	Period  TimePeriod
	Repos   []store.Repository
	Commits []store.Commit
	Stats   Stats
}

// Builder assembles WorkSummary values from the store.
type Builder struct {
	store     store.Store
	languages *LanguageIndex
}

// NewBuilder builds a Builder around a store and a language index.
func NewBuilder(st store.Store, languages *LanguageIndex) *Builder {
	return &Builder{store: st, languages: languages}
}

// Build queries the period's commits and file changes and derives the
// summary stats. An empty period yields a zero-valued summary, not an
// error. repoIDs narrows the query; empty means all repositories. author
// is a substring match on author name or email.
func (b *Builder) Build(ctx context.Context, period TimePeriod, repoIDs []int64, author string) (WorkSummary, error) {
	repos, err := b.store.GetAllRepositories(ctx)
	if err != nil {
		return WorkSummary{}, fmt.Errorf("failed to load repositories: %w", err)
	}
	if len(repoIDs) > 0 {
		wanted := make(map[int64]bool, len(repoIDs))
		for _, id := range repoIDs {
			wanted[id] = true
		}
		filtered := repos[:0]
		for _, repo := range repos {
			if wanted[repo.ID] {
				filtered = append(filtered, repo)
			}
		}
		repos = filtered
	}

	commits, err := b.store.GetCommitsByDateRange(ctx, period.Start, period.End, repoIDs, author)
	if err != nil {
		return WorkSummary{}, fmt.Errorf("failed to load commits: %w", err)
	}
	changes, err := b.store.GetFileChangesByDateRange(ctx, period.Start, period.End, repoIDs)
	if err != nil {
		return WorkSummary{}, fmt.Errorf("failed to load file changes: %w", err)
	}

	ws := WorkSummary{Period: period, Repos: repos, Commits: commits}
	ws.Stats = b.deriveStats(commits, changes)
	return ws, nil
}

func (b *Builder) deriveStats(commits []store.Commit, changes []store.FileChange) Stats {
	var stats Stats
	days := make(map[string]bool)
	for _, c := range commits {
		stats.TotalCommits++
		stats.TotalInsertions += c.Insertions
		stats.TotalDeletions += c.Deletions
		stats.TotalFilesChanged += c.FilesChanged
		days[c.Date.Format("2006-01-02")] = true
	}
	stats.ActiveDays = len(days)

	langCounts := make(map[string]int)
	fileCounts := make(map[string]int)
	for _, fc := range changes {
		fileCounts[fc.FilePath]++
		if lang := b.languages.Detect(fc.FilePath); lang != "" {
			langCounts[lang]++
		}
	}
	stats.TopLanguages = topLanguages(langCounts)
	stats.TopFiles = topFiles(fileCounts)
	return stats
}

func topLanguages(counts map[string]int) []LanguageCount {
	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	if len(out) > topListSize {
		out = out[:topListSize]
	}
	return out
}

func topFiles(counts map[string]int) []FileCount {
	out := make([]FileCount, 0, len(counts))
	for path, n := range counts {
		out = append(out, FileCount{Path: path, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Path < out[j].Path
	})
	if len(out) > topListSize {
		out = out[:topListSize]
	}
	return out
}
