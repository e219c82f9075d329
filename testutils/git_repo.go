package testutils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DiamondRepository is a real repository written by go-git with the history
//
//	root <- left  <- merge <- tip
//	     <- right <-
//
// where merge has parents (left, right).
type DiamondRepository struct {
	Repo    *git.Repository
	WorkDir string
	GitDir  string

	Root, Left, Right, Merge, Tip string
}

// SetupDiamondRepository initializes a repository with go-git and commits a
// diamond-shaped history. HEAD ends up on the default branch pointing at Tip.
func SetupDiamondRepository(t *testing.T) *DiamondRepository {
	t.Helper()

	workDir := t.TempDir()
	repo, err := git.PlainInit(workDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to open worktree: %v", err)
	}

	CreateTestFile(t, workDir, "README.md", []byte("# diamond\n"))
	if _, err := worktree.Add("README.md"); err != nil {
		t.Fatalf("Failed to stage README.md: %v", err)
	}

	clock := time.Unix(1700000000, 0).UTC()
	commit := func(message string, parents ...plumbing.Hash) string {
		t.Helper()

		clock = clock.Add(time.Minute)
		signature := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: clock}
		hash, err := worktree.Commit(message, &git.CommitOptions{
			Author:            signature,
			Committer:         signature,
			Parents:           parents,
			AllowEmptyCommits: true,
		})
		if err != nil {
			t.Fatalf("Failed to commit %q: %v", message, err)
		}
		return hash.String()
	}

	diamond := &DiamondRepository{
		Repo:    repo,
		WorkDir: workDir,
		GitDir:  filepath.Join(workDir, constants.GitDir),
	}
	diamond.Root = commit("root commit\n")
	diamond.Left = commit("left side\n", plumbing.NewHash(diamond.Root))
	diamond.Right = commit("right side\n\nwith a second paragraph\n", plumbing.NewHash(diamond.Root))
	diamond.Merge = commit("merge right into left\n", plumbing.NewHash(diamond.Left), plumbing.NewHash(diamond.Right))
	diamond.Tip = commit("tip\n", plumbing.NewHash(diamond.Merge))

	return diamond
}

// ReachableHashes lists every commit reachable from hash according to go-git.
func (d *DiamondRepository) ReachableHashes(t *testing.T, hash string) []string {
	t.Helper()

	iter, err := d.Repo.Log(&git.LogOptions{From: plumbing.NewHash(hash)})
	if err != nil {
		t.Fatalf("Failed to read log with go-git: %v", err)
	}
	defer iter.Close()

	var hashes []string
	err = iter.ForEach(func(c *object.Commit) error {
		hashes = append(hashes, c.Hash.String())
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to iterate go-git log: %v", err)
	}
	return hashes
}
