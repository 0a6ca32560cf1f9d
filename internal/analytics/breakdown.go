package analytics

import (
	"sort"

	"github.com/gitpulse/gitpulse/internal/summary"
)

// RepoContribution is one repository's share of the period's work.
type RepoContribution struct {
	RepoID     int64
	Name       string
	Commits    int
	Insertions int
	Deletions  int
}

// computeBreakdown ranks repositories by commit count, then by total
// lines changed. Repositories with no commits in the period are excluded.
func computeBreakdown(ws summary.WorkSummary) []RepoContribution {
	names := make(map[int64]string, len(ws.Repos))
	for _, repo := range ws.Repos {
		names[repo.ID] = repo.Name
	}

	byRepo := make(map[int64]*RepoContribution)
	order := make([]int64, 0, len(ws.Repos))
	for _, c := range ws.Commits {
		contrib, ok := byRepo[c.RepoID]
		if !ok {
			contrib = &RepoContribution{RepoID: c.RepoID, Name: names[c.RepoID]}
			byRepo[c.RepoID] = contrib
			order = append(order, c.RepoID)
		}
		contrib.Commits++
		contrib.Insertions += c.Insertions
		contrib.Deletions += c.Deletions
	}

	breakdown := make([]RepoContribution, 0, len(order))
	for _, id := range order {
		breakdown = append(breakdown, *byRepo[id])
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Commits != breakdown[j].Commits {
			return breakdown[i].Commits > breakdown[j].Commits
		}
		linesI := breakdown[i].Insertions + breakdown[i].Deletions
		linesJ := breakdown[j].Insertions + breakdown[j].Deletions
		return linesI > linesJ
	})
	return breakdown
}
