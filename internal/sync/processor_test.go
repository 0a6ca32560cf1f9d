package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/store"
)

// fakeStore is an in-memory store.Store with switchable failure modes.
type fakeStore struct {
	mu             sync.Mutex
	repos          map[string]*store.Repository
	commits        []store.Commit
	changes        []store.FileChange
	nextRepoID     int64
	nextCommitID   int64
	commitErr      error
	changeErr      error
	failHashes     map[string]bool
	zeroCommitID   bool
	watermarkCalls []time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{repos: make(map[string]*store.Repository)}
}

func (f *fakeStore) GetRepository(_ context.Context, path string) (*store.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[path]
	if !ok {
		return nil, nil
	}
	cp := *repo
	return &cp, nil
}

func (f *fakeStore) AddRepository(_ context.Context, repo *store.Repository) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRepoID++
	repo.ID = f.nextRepoID
	cp := *repo
	f.repos[repo.Path] = &cp
	return repo.ID, nil
}

func (f *fakeStore) UpdateLastSynced(_ context.Context, id int64, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watermarkCalls = append(f.watermarkCalls, ts)
	for _, repo := range f.repos {
		if repo.ID == id {
			t := ts
			repo.LastSynced = &t
		}
	}
	return nil
}

func (f *fakeStore) GetAllRepositories(context.Context) ([]store.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Repository, 0, len(f.repos))
	for _, repo := range f.repos {
		out = append(out, *repo)
	}
	return out, nil
}

func (f *fakeStore) AddCommit(_ context.Context, commit *store.Commit) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return 0, false, f.commitErr
	}
	if f.failHashes[commit.Hash] {
		return 0, false, errors.New("engineered failure")
	}
	if f.zeroCommitID {
		return 0, true, nil
	}
	for _, existing := range f.commits {
		if existing.RepoID == commit.RepoID && existing.Hash == commit.Hash {
			return existing.ID, false, nil // duplicate insert is a no-op
		}
	}
	f.nextCommitID++
	commit.ID = f.nextCommitID
	f.commits = append(f.commits, *commit)
	return commit.ID, true, nil
}

func (f *fakeStore) GetLatestCommitDate(context.Context, int64) (*time.Time, error) {
	return nil, nil
}

func (f *fakeStore) GetCommitsByRepository(_ context.Context, repoID int64) ([]store.Commit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Commit
	for _, c := range f.commits {
		if c.RepoID == repoID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCommitsByDateRange(context.Context, time.Time, time.Time, []int64, string) ([]store.Commit, error) {
	return nil, nil
}

func (f *fakeStore) AddFileChange(_ context.Context, fc *store.FileChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changeErr != nil {
		return f.changeErr
	}
	f.changes = append(f.changes, *fc)
	return nil
}

func (f *fakeStore) GetFileChangesByCommit(context.Context, int64) ([]store.FileChange, error) {
	return nil, nil
}

func (f *fakeStore) GetFileChangesByDateRange(context.Context, time.Time, time.Time, []int64) ([]store.FileChange, error) {
	return nil, nil
}

func (f *fakeStore) Close() error { return nil }

// statClient serves one canned numstat for every parent diff.
type statClient struct {
	lines []gitx.NumstatLine
}

func (s *statClient) ListBranches(context.Context, string) (gitx.BranchSummary, error) {
	return gitx.BranchSummary{}, errors.New("not implemented")
}

func (s *statClient) Log(context.Context, string, gitx.LogOptions) ([]gitx.LogEntry, error) {
	return nil, errors.New("not implemented")
}

func (s *statClient) DiffSummary(context.Context, string, string, string) (gitx.DiffTotals, error) {
	return gitx.DiffTotals{}, errors.New("not implemented")
}

func (s *statClient) DiffNumstat(context.Context, string, string, string) ([]gitx.NumstatLine, error) {
	return s.lines, nil
}

func (s *statClient) RemoteURL(context.Context, string) (string, error) {
	return "", errors.New("no remote")
}

func testEntry(hash string) gitx.LogEntry {
	return gitx.LogEntry{
		Hash:        hash,
		AuthorName:  "dev",
		AuthorEmail: "dev@example.com",
		Date:        time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local),
		Message:     "change things",
	}
}

func TestProcess_PersistsCommitAndChanges(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	client := &statClient{lines: []gitx.NumstatLine{
		{Path: "a.go", Insertions: 5, Deletions: 1},
		{Path: "b.go", Insertions: 2, Deletions: 0},
	}}
	p := NewProcessor(st, gitx.NewStatsResolver(client, nil), nil)

	err := p.Process(context.Background(), 1, "/repo", testEntry("abc"))
	require.NoError(t, err)

	require.Len(t, st.commits, 1)
	c := st.commits[0]
	assert.Equal(t, "abc", c.Hash)
	assert.Equal(t, 2, c.FilesChanged)
	assert.Equal(t, 7, c.Insertions)
	assert.Equal(t, 1, c.Deletions)

	require.Len(t, st.changes, 2)
	assert.Equal(t, c.ID, st.changes[0].CommitID)
}

func TestProcess_ZeroCommitIDIsFatal(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.zeroCommitID = true
	p := NewProcessor(st, gitx.NewStatsResolver(&statClient{}, nil), nil)

	err := p.Process(context.Background(), 1, "/repo", testEntry("abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero id")
}

func TestProcess_CommitInsertFailureIsFatal(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.commitErr = errors.New("disk full")
	p := NewProcessor(st, gitx.NewStatsResolver(&statClient{}, nil), nil)

	err := p.Process(context.Background(), 1, "/repo", testEntry("abc"))
	require.Error(t, err)
}

func TestProcess_FileChangeFailureIsSkipped(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.changeErr = errors.New("constraint violation")
	client := &statClient{lines: []gitx.NumstatLine{{Path: "a.go", Insertions: 1}}}
	p := NewProcessor(st, gitx.NewStatsResolver(client, nil), nil)

	err := p.Process(context.Background(), 1, "/repo", testEntry("abc"))
	require.NoError(t, err)
	assert.Len(t, st.commits, 1)
	assert.Empty(t, st.changes)
}

func TestPool_PartialFailuresPersistTheRest(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.failHashes = map[string]bool{"c2": true, "c5": true}
	client := &statClient{lines: []gitx.NumstatLine{{Path: "a.go", Insertions: 1}}}
	p := NewProcessor(st, gitx.NewStatsResolver(client, nil), nil)

	tasks := make([]Task, 0, 8)
	for i := 0; i < 8; i++ {
		entry := testEntry(fmt.Sprintf("c%d", i))
		tasks = append(tasks, func(ctx context.Context) error {
			return p.Process(ctx, 1, "/repo", entry)
		})
	}

	result := RunPool(context.Background(), 3, time.Second, tasks)
	assert.Equal(t, 6, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)

	persisted, err := st.GetCommitsByRepository(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, persisted, 6)
}

func TestProcess_DuplicateCommitIsNoOp(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	client := &statClient{lines: []gitx.NumstatLine{{Path: "a.go", Insertions: 1}}}
	p := NewProcessor(st, gitx.NewStatsResolver(client, nil), nil)

	require.NoError(t, p.Process(context.Background(), 1, "/repo", testEntry("abc")))
	require.NoError(t, p.Process(context.Background(), 1, "/repo", testEntry("abc")))

	assert.Len(t, st.commits, 1)
	// The second pass must not re-insert the commit's file changes.
	assert.Len(t, st.changes, 1)
}
