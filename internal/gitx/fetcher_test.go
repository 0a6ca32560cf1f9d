package gitx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient serves canned branch and log data keyed by branch name.
type fakeClient struct {
	branches    BranchSummary
	branchesErr error
	logs        map[string][]LogEntry // key "" is HEAD
	logErrs     map[string]error
	numstat     map[string][]NumstatLine // key "from..to"
	numstatErrs map[string]error
}

func (f *fakeClient) ListBranches(context.Context, string) (BranchSummary, error) {
	return f.branches, f.branchesErr
}

func (f *fakeClient) Log(_ context.Context, _ string, opts LogOptions) ([]LogEntry, error) {
	if err, ok := f.logErrs[opts.Branch]; ok {
		return nil, err
	}
	return f.logs[opts.Branch], nil
}

func (f *fakeClient) DiffSummary(context.Context, string, string, string) (DiffTotals, error) {
	return DiffTotals{}, errors.New("not implemented")
}

func (f *fakeClient) DiffNumstat(_ context.Context, _ string, fromRef, toRef string) ([]NumstatLine, error) {
	key := fromRef + ".." + toRef
	if err, ok := f.numstatErrs[key]; ok {
		return nil, err
	}
	lines, ok := f.numstat[key]
	if !ok {
		return nil, errors.New("unknown diff")
	}
	return lines, nil
}

func (f *fakeClient) RemoteURL(context.Context, string) (string, error) {
	return "", errors.New("no remote")
}

func entry(hash string) LogEntry {
	return LogEntry{Hash: hash, AuthorName: "dev", Date: time.Now()}
}

func TestFetchCommits_DeduplicatesAcrossBranches(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		branches: BranchSummary{Current: "main", All: []string{"main", "develop"}},
		logs: map[string][]LogEntry{
			"main":    {entry("aaa"), entry("bbb")},
			"develop": {entry("bbb"), entry("ccc")},
		},
	}

	entries, err := NewFetcher(client, 0, nil).FetchCommits(context.Background(), "/repo", time.Time{})
	require.NoError(t, err)

	hashes := make([]string, 0, len(entries))
	for _, e := range entries {
		hashes = append(hashes, e.Hash)
	}
	// Shared commit bbb is attributed to main, the first branch to surface it.
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, hashes)
}

func TestFetchCommits_BranchListingFailureFallsBackToHead(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		branchesErr: errors.New("packed-refs corrupted"),
		logs: map[string][]LogEntry{
			"": {entry("aaa"), entry("aaa"), entry("bbb")},
		},
	}

	entries, err := NewFetcher(client, 0, nil).FetchCommits(context.Background(), "/repo", time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "aaa", entries[0].Hash)
	assert.Equal(t, "bbb", entries[1].Hash)
}

func TestFetchCommits_HeadFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		branchesErr: errors.New("packed-refs corrupted"),
		logErrs:     map[string]error{"": errors.New("no HEAD")},
	}

	entries, err := NewFetcher(client, 0, nil).FetchCommits(context.Background(), "/repo", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchCommits_UnreadableBranchSkipped(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		branches: BranchSummary{Current: "main", All: []string{"main", "develop"}},
		logs: map[string][]LogEntry{
			"main": {entry("aaa")},
		},
		logErrs: map[string]error{"develop": errors.New("broken ref")},
	}

	entries, err := NewFetcher(client, 0, nil).FetchCommits(context.Background(), "/repo", time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "aaa", entries[0].Hash)
}

func TestSelectBranches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		branches BranchSummary
		want     []string
	}{
		{
			name:     "current plus mainline",
			branches: BranchSummary{Current: "feature/x", All: []string{"feature/x", "main", "develop"}},
			want:     []string{"feature/x", "main", "develop"},
		},
		{
			name:     "current is mainline listed once",
			branches: BranchSummary{Current: "main", All: []string{"main"}},
			want:     []string{"main"},
		},
		{
			name:     "origin equivalents included",
			branches: BranchSummary{Current: "main", All: []string{"main", "origin/main", "origin/develop"}},
			want:     []string{"main", "origin/main", "origin/develop"},
		},
		{
			name:     "no mainline falls back to current",
			branches: BranchSummary{Current: "wip", All: []string{"topic-a", "topic-b"}},
			want:     []string{"wip"},
		},
		{
			name:     "detached head falls back to first three locals",
			branches: BranchSummary{All: []string{"topic-a", "origin/topic-a", "topic-b", "topic-c", "topic-d"}},
			want:     []string{"topic-a", "topic-b", "topic-c"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFetcher(&fakeClient{}, 0, nil)
			assert.Equal(t, tt.want, f.selectBranches(tt.branches))
		})
	}
}
