package gitx

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var errStopIteration = errors.New("stop iteration")

// GoGit implements Client on top of go-git. Opened repositories are cached
// per path so repeated calls during one sync pass don't re-read the object
// database setup.
type GoGit struct {
	mu    sync.Mutex
	repos map[string]*git.Repository
}

// NewGoGit returns a Client backed by go-git.
func NewGoGit() *GoGit {
	return &GoGit{repos: make(map[string]*git.Repository)}
}

func (g *GoGit) open(repoPath string) (*git.Repository, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if repo, ok := g.repos[absPath]; ok {
		return repo, nil
	}
	repo, err := git.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", absPath, err)
	}
	g.repos[absPath] = repo
	return repo, nil
}

func (g *GoGit) ListBranches(ctx context.Context, repoPath string) (BranchSummary, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return BranchSummary{}, err
	}

	var summary BranchSummary
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		summary.Current = head.Name().Short()
	}

	refs, err := repo.References()
	if err != nil {
		return BranchSummary{}, fmt.Errorf("failed to list references: %w", err)
	}
	defer refs.Close()

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := ref.Name()
		if name.IsBranch() || name.IsRemote() {
			summary.All = append(summary.All, name.Short())
		}
		return nil
	})
	if err != nil {
		return BranchSummary{}, fmt.Errorf("failed to iterate references: %w", err)
	}
	return summary, nil
}

func (g *GoGit) Log(ctx context.Context, repoPath string, opts LogOptions) ([]LogEntry, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return nil, err
	}

	var from plumbing.Hash
	if opts.Branch == "" {
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("failed to get HEAD: %w", err)
		}
		from = head.Hash()
	} else {
		hash, err := repo.ResolveRevision(plumbing.Revision(opts.Branch))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve branch %s: %w", opts.Branch, err)
		}
		from = *hash
	}

	iter, err := repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("failed to create log iterator: %w", err)
	}
	defer iter.Close()

	var entries []LogEntry
	err = iter.ForEach(func(c *object.Commit) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if pastCutoff(c, opts.Since) {
			return errStopIteration
		}
		entries = append(entries, LogEntry{
			Hash:        c.Hash.String(),
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			Date:        c.Author.When,
			Message:     c.Message,
		})
		if opts.MaxCount > 0 && len(entries) >= opts.MaxCount {
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return entries, nil
}

// pastCutoff reports whether the walk has moved past the since cutoff.
// The iterator is ordered by committer time, so the committer date
// decides when to stop: rebased and cherry-picked commits keep an old
// author date but land with a fresh committer date and must still be
// enumerated.
func pastCutoff(c *object.Commit, since time.Time) bool {
	return !since.IsZero() && c.Committer.When.Before(since)
}

func (g *GoGit) DiffSummary(ctx context.Context, repoPath, fromRef, toRef string) (DiffTotals, error) {
	lines, err := g.DiffNumstat(ctx, repoPath, fromRef, toRef)
	if err != nil {
		return DiffTotals{}, err
	}
	var totals DiffTotals
	for _, line := range lines {
		totals.FilesChanged++
		totals.Insertions += line.Insertions
		totals.Deletions += line.Deletions
	}
	return totals, nil
}

func (g *GoGit) DiffNumstat(ctx context.Context, repoPath, fromRef, toRef string) ([]NumstatLine, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return nil, err
	}

	fromTree, err := g.treeFor(repo, fromRef)
	if err != nil {
		return nil, err
	}
	toTree, err := g.treeFor(repo, toRef)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s..%s: %w", fromRef, toRef, err)
	}

	lines := make([]NumstatLine, 0, len(changes))
	for _, change := range changes {
		line := NumstatLine{Path: changePath(change)}

		patch, err := change.PatchContext(ctx)
		if err != nil || patch == nil {
			// Unpatchable change (e.g. submodule pointer); keep the
			// file row with zero counts.
			lines = append(lines, line)
			continue
		}
		for _, fp := range patch.FilePatches() {
			if fp.IsBinary() {
				line.Binary = true
			}
		}
		for _, stat := range patch.Stats() {
			line.Insertions += stat.Addition
			line.Deletions += stat.Deletion
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// treeFor resolves a ref string to its tree. The empty-tree ref maps to a
// nil tree, which go-git diffs as an empty left side.
func (g *GoGit) treeFor(repo *git.Repository, ref string) (*object.Tree, error) {
	if ref == EmptyTreeRef {
		return nil, nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", ref, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for %s: %w", ref, err)
	}
	return tree, nil
}

func changePath(change *object.Change) string {
	from, to := change.From.Name, change.To.Name
	switch {
	case from != "" && to != "" && from != to:
		return from + RenameMarker + to
	case to != "":
		return to
	default:
		return from
	}
}

func (g *GoGit) RemoteURL(ctx context.Context, repoPath string) (string, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		remotes, err := repo.Remotes()
		if err != nil || len(remotes) == 0 {
			return "", fmt.Errorf("no remotes configured")
		}
		remote = remotes[0]
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote has no URL")
	}
	return urls[0], nil
}

// HasRepository reports whether path contains git metadata. Used for path
// validation before a sync is attempted.
func HasRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// UserIdentity reads the configured git user name and email from the
// global config scope.
func UserIdentity(repoPath string) (name, email string, err error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open git repository: %w", err)
	}
	cfg, err := repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return "", "", fmt.Errorf("failed to read git config: %w", err)
	}
	return cfg.User.Name, cfg.User.Email, nil
}
