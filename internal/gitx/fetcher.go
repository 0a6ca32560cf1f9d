package gitx

import (
	"context"
	"strings"
	"time"
)

// DefaultBranchCap bounds how many commits a single branch enumeration may
// return, so a sync over a huge history stays finite.
const DefaultBranchCap = 5000

// mainlineBranches are the common names checked for in every repository,
// both as local branches and as origin remote-tracking branches.
var mainlineBranches = []string{"main", "master", "develop", "dev", "trunk"}

// Fetcher enumerates the new commits of a repository across its
// interesting branches and merges them into one de-duplicated stream.
type Fetcher struct {
	client    Client
	branchCap int
	log       Logger
}

// NewFetcher builds a Fetcher. branchCap <= 0 selects DefaultBranchCap.
func NewFetcher(client Client, branchCap int, log Logger) *Fetcher {
	if branchCap <= 0 {
		branchCap = DefaultBranchCap
	}
	if log == nil {
		log = NopLogger{}
	}
	return &Fetcher{client: client, branchCap: branchCap, log: log}
}

// FetchCommits returns the union of commits reachable from the selected
// branches, each hash exactly once, newest-first within the first branch
// that surfaced it. A zero since means the full (capped) history.
//
// Enumeration never fails outright: an unreadable branch is skipped, a
// failed branch listing degrades to a single HEAD enumeration, and a
// failed HEAD enumeration yields an empty result.
func (f *Fetcher) FetchCommits(ctx context.Context, repoPath string, since time.Time) ([]LogEntry, error) {
	branches, err := f.client.ListBranches(ctx, repoPath)
	if err != nil {
		f.log.Warnf("branch listing failed for %s, falling back to HEAD: %v", repoPath, err)
		entries, err := f.client.Log(ctx, repoPath, LogOptions{MaxCount: f.branchCap, Since: since})
		if err != nil {
			f.log.Warnf("HEAD enumeration failed for %s: %v", repoPath, err)
			return nil, nil
		}
		return dedupeByHash(entries), nil
	}

	selected := f.selectBranches(branches)

	seen := make(map[string]struct{})
	var merged []LogEntry
	for _, branch := range selected {
		entries, err := f.client.Log(ctx, repoPath, LogOptions{
			MaxCount: f.branchCap,
			Since:    since,
			Branch:   branch,
		})
		if err != nil {
			f.log.Warnf("skipping branch %s in %s: %v", branch, repoPath, err)
			continue
		}
		for _, entry := range entries {
			if _, ok := seen[entry.Hash]; ok {
				continue
			}
			seen[entry.Hash] = struct{}{}
			merged = append(merged, entry)
		}
	}
	return merged, nil
}

// selectBranches picks the branches worth enumerating: the checked-out
// branch, any locally present mainline name, and the origin equivalents of
// those names. When nothing matches it falls back to the current branch,
// or to the first three local branches.
func (f *Fetcher) selectBranches(branches BranchSummary) []string {
	present := make(map[string]struct{}, len(branches.All))
	for _, name := range branches.All {
		present[name] = struct{}{}
	}

	var selected []string
	pick := func(name string) {
		if _, ok := present[name]; !ok {
			return
		}
		for _, s := range selected {
			if s == name {
				return
			}
		}
		selected = append(selected, name)
	}

	if branches.Current != "" {
		pick(branches.Current)
	}
	for _, name := range mainlineBranches {
		pick(name)
	}
	for _, name := range mainlineBranches {
		pick("origin/" + name)
	}
	if len(selected) > 0 {
		return selected
	}

	if branches.Current != "" {
		return []string{branches.Current}
	}
	var locals []string
	for _, name := range branches.All {
		if strings.Contains(name, "/") {
			continue // remote-tracking
		}
		locals = append(locals, name)
		if len(locals) == 3 {
			break
		}
	}
	return locals
}

func dedupeByHash(entries []LogEntry) []LogEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry.Hash]; ok {
			continue
		}
		seen[entry.Hash] = struct{}{}
		out = append(out, entry)
	}
	return out
}
