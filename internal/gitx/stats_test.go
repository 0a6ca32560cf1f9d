package gitx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ParentDiff(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		numstat: map[string][]NumstatLine{
			"abc^..abc": {
				{Path: "main.go", Insertions: 10, Deletions: 2},
				{Path: "util.go", Insertions: 0, Deletions: 5},
			},
		},
	}

	stats := NewStatsResolver(client, nil).Resolve(context.Background(), "/repo", "abc")
	assert.Equal(t, 2, stats.FilesChanged)
	assert.Equal(t, 10, stats.Insertions)
	assert.Equal(t, 7, stats.Deletions)
	require.Len(t, stats.FileChanges, 2)
	assert.Equal(t, ChangeModified, stats.FileChanges[0].ChangeType)
	assert.Equal(t, ChangeDeleted, stats.FileChanges[1].ChangeType)
}

func TestResolve_RootCommitUsesEmptyTree(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		numstatErrs: map[string]error{
			"abc^..abc": errors.New("unknown revision abc^"),
		},
		numstat: map[string][]NumstatLine{
			EmptyTreeRef + "..abc": {
				{Path: "main.go", Insertions: 100, Deletions: 0},
			},
		},
	}

	stats := NewStatsResolver(client, nil).Resolve(context.Background(), "/repo", "abc")
	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, 100, stats.Insertions)
	assert.Equal(t, ChangeAdded, stats.FileChanges[0].ChangeType)
}

func TestResolve_BothTiersFailYieldsZeroStats(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		numstatErrs: map[string]error{
			"abc^..abc":            errors.New("object corrupted"),
			EmptyTreeRef + "..abc": errors.New("object corrupted"),
		},
	}

	stats := NewStatsResolver(client, nil).Resolve(context.Background(), "/repo", "abc")
	assert.Equal(t, CommitStats{}, stats)
}

func TestResolve_TotalsMatchFileChanges(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		numstat: map[string][]NumstatLine{
			"abc^..abc": {
				{Path: "a.go", Insertions: 1, Deletions: 2},
				{Path: "img.png", Binary: true},
				{Path: "b.go", Insertions: 30, Deletions: 0},
			},
		},
	}

	stats := NewStatsResolver(client, nil).Resolve(context.Background(), "/repo", "abc")
	require.Equal(t, stats.FilesChanged, len(stats.FileChanges))

	var ins, del int
	for _, fc := range stats.FileChanges {
		ins += fc.Insertions
		del += fc.Deletions
	}
	assert.Equal(t, stats.Insertions, ins)
	assert.Equal(t, stats.Deletions, del)
}

func TestClassifyChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line NumstatLine
		want string
	}{
		{NumstatLine{Path: "new.go", Insertions: 10}, ChangeAdded},
		{NumstatLine{Path: "gone.go", Deletions: 10}, ChangeDeleted},
		{NumstatLine{Path: "edit.go", Insertions: 3, Deletions: 2}, ChangeModified},
		{NumstatLine{Path: "old.go => new.go", Insertions: 1}, ChangeRenamed},
		{NumstatLine{Path: "img.png", Binary: true}, ChangeModified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyChange(tt.line), tt.line.Path)
	}
}
