package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/KostasZigo/mygit/internal/history"
	"github.com/KostasZigo/mygit/internal/objects"
	"github.com/KostasZigo/mygit/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestSession opens gitDir and fails test on error.
func openTestSession(t *testing.T, gitDir string) *Session {
	t.Helper()

	session, err := Open(gitDir)
	require.NoError(t, err)
	return session
}

func writeConfig(t *testing.T, gitDir, content string) {
	t.Helper()

	testutils.CreateTestFile(t, gitDir, constants.Config, []byte(content))
}

// TestFindRoot verifies discovery walks up from a nested directory.
func TestFindRoot(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	nested := filepath.Join(filepath.Dir(gitDir), "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, constants.DirPerms))

	found, err := FindRoot(nested)

	require.NoError(t, err)
	assert.Equal(t, gitDir, found)
}

func TestFindRoot_NotFound(t *testing.T) {
	_, err := FindRoot(t.TempDir())

	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

// TestFindRoot_IgnoresGitFile verifies a .git file (not directory) is skipped.
func TestFindRoot_IgnoresGitFile(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	inner := filepath.Join(filepath.Dir(gitDir), "submodule")
	require.NoError(t, os.MkdirAll(inner, constants.DirPerms))
	testutils.CreateTestFile(t, inner, constants.GitDir, []byte("gitdir: ../.git/modules/submodule\n"))

	found, err := FindRoot(inner)

	require.NoError(t, err)
	assert.Equal(t, gitDir, found)
}

func TestOpen_NotADirectory(t *testing.T) {
	file := testutils.CreateTestFile(t, t.TempDir(), "plain", []byte("x"))

	_, err := Open(file)
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Config(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	writeConfig(t, gitDir, "[core]\n\trepositoryformatversion = 0\n\tfilemode = true\n\tbare = true\n[remote \"origin\"]\n\turl = https://example.com/repo.git\n")

	session := openTestSession(t, gitDir)

	assert.True(t, session.IsBare())
	assert.Equal(t, gitDir, session.GitDir())
}

func TestOpen_WithoutConfig(t *testing.T) {
	session := openTestSession(t, testutils.SetupTestRepo(t))

	assert.False(t, session.IsBare())
}

// TestOpen_ConfigWithoutFormatVersion verifies a [core] section lacking
// repositoryformatversion opens as version 0, as go-git writes it.
func TestOpen_ConfigWithoutFormatVersion(t *testing.T) {
	for _, content := range []string{"[core]\n\tbare = false\n", "[core]\n", "[user]\n\tname = Ada\n"} {
		gitDir := testutils.SetupTestRepo(t)
		writeConfig(t, gitDir, content)

		session, err := Open(gitDir)
		require.NoError(t, err, "config %q", content)
		assert.False(t, session.IsBare())
	}

	diamond := testutils.SetupDiamondRepository(t)
	_, err := Open(diamond.GitDir)
	assert.NoError(t, err)
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	for _, version := range []string{"2", "-1", "abc"} {
		gitDir := testutils.SetupTestRepo(t)
		writeConfig(t, gitDir, "[core]\n\trepositoryformatversion = "+version+"\n")

		_, err := Open(gitDir)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "version %s", version)
	}
}

// TestHead_SymbolicRef verifies "ref: refs/heads/main" resolves to the trimmed branch hash.
func TestHead_SymbolicRef(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	hash := testutils.RandomHash()
	testutils.WriteRef(t, gitDir, constants.DefaultBranch, hash)

	head, err := openTestSession(t, gitDir).Head()

	require.NoError(t, err)
	assert.Equal(t, objects.Hash(hash), head)
	assert.Len(t, string(head), constants.HashStringLength)
}

func TestHead_NestedBranchName(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	hash := testutils.RandomHash()
	testutils.WriteRef(t, gitDir, "feature/login", hash)
	testutils.WriteHead(t, gitDir, "ref: refs/heads/feature/login\n")

	head, err := openTestSession(t, gitDir).Head()

	require.NoError(t, err)
	assert.Equal(t, objects.Hash(hash), head)
}

func TestHead_Detached(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	hash := testutils.RandomHash()
	testutils.WriteHead(t, gitDir, hash+"\n")

	head, err := openTestSession(t, gitDir).Head()

	require.NoError(t, err)
	assert.Equal(t, objects.Hash(hash), head)
}

func TestHead_UnbornBranch(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)

	_, err := openTestSession(t, gitDir).Head()

	assert.ErrorIs(t, err, ErrUnbornBranch)
}

func TestHead_Invalid(t *testing.T) {
	tests := map[string]struct {
		head   string
		target string
	}{
		"garbage":            {head: "not a hash\n"},
		"empty":              {head: ""},
		"empty ref":          {head: "ref: \n"},
		"garbage target":     {head: "ref: refs/heads/main\n", target: "zzz\n"},
		"two-level redirect": {head: "ref: refs/heads/main\n", target: "ref: refs/heads/other\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gitDir := testutils.SetupTestRepo(t)
			testutils.WriteHead(t, gitDir, tt.head)
			if tt.target != "" {
				testutils.CreateTestFile(t, filepath.Join(gitDir, constants.Refs, constants.Heads), constants.DefaultBranch, []byte(tt.target))
			}

			_, err := openTestSession(t, gitDir).Head()
			assert.ErrorIs(t, err, ErrInvalidHead)
		})
	}
}

func TestHead_MissingHeadFile(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	require.NoError(t, os.Remove(filepath.Join(gitDir, constants.Head)))

	_, err := openTestSession(t, gitDir).Head()

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveRevision(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	hash := testutils.RandomHash()
	testutils.WriteRef(t, gitDir, constants.DefaultBranch, hash)
	session := openTestSession(t, gitDir)

	resolved, err := session.ResolveRevision(constants.Head)
	require.NoError(t, err)
	assert.Equal(t, objects.Hash(hash), resolved)

	other := testutils.RandomHash()
	resolved, err = session.ResolveRevision(other)
	require.NoError(t, err)
	assert.Equal(t, objects.Hash(other), resolved)

	_, err = session.ResolveRevision("main~1")
	assert.ErrorIs(t, err, objects.ErrInvalidHash)
}

// TestSession_LogFixture verifies the session resolves HEAD and walks hand-written objects.
func TestSession_LogFixture(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	a := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Message: "a\n"})
	b := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Parents: []string{a}, Message: "b\n"})
	c := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Parents: []string{a}, Message: "c\n"})
	d := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Parents: []string{b, c}, Message: "d\n"})
	testutils.WriteRef(t, gitDir, constants.DefaultBranch, d)

	session := openTestSession(t, gitDir)
	head, err := session.Head()
	require.NoError(t, err)

	log, err := session.Log(head)
	require.NoError(t, err)

	var hashes []string
	for _, commit := range log {
		hashes = append(hashes, commit.Hash.String())
	}
	assert.Equal(t, []string{d, b, c, a}, hashes)
	assert.Equal(t, "d\n", log[0].Message)
	assert.Equal(t, []objects.Hash{objects.Hash(b), objects.Hash(c)}, log[0].Parents)
}

func TestSession_LogMaxCount(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	a := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Message: "a"})
	b := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Parents: []string{a}, Message: "b"})

	log, err := openTestSession(t, gitDir).Log(objects.Hash(b), history.WithMaxCount(1))

	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, objects.Hash(b), log[0].Hash)
}

// TestSession_LogBrokenAncestor verifies one malformed ancestor aborts the walk.
func TestSession_LogBrokenAncestor(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	broken := testutils.WriteObject(t, gitDir, "commit", []byte("tree t1\nauthor nobody\ncommitter A <a@x> 1\n\nbroken"))
	tip := testutils.WriteCommit(t, gitDir, testutils.CommitFixture{Parents: []string{broken}, Message: "tip"})

	log, err := openTestSession(t, gitDir).Log(objects.Hash(tip))

	assert.Nil(t, log)
	var invalid *objects.InvalidObjectError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "author", invalid.Field)
	assert.Equal(t, objects.Hash(broken), invalid.Hash)
}

func TestSession_ReadCommitWrongKind(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	blob := testutils.WriteObject(t, gitDir, "blob", []byte("not a commit"))

	_, err := openTestSession(t, gitDir).ReadCommit(objects.Hash(blob))

	var invalid *objects.InvalidObjectError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "kind", invalid.Field)
}

// TestSession_GoGitRepository verifies the walk over a repository written by go-git.
func TestSession_GoGitRepository(t *testing.T) {
	diamond := testutils.SetupDiamondRepository(t)

	session, err := Discover(diamond.WorkDir)
	require.NoError(t, err)
	assert.False(t, session.IsBare())

	head, err := session.Head()
	require.NoError(t, err)
	assert.Equal(t, objects.Hash(diamond.Tip), head)

	log, err := session.Log(head)
	require.NoError(t, err)

	var hashes []string
	for _, commit := range log {
		hashes = append(hashes, commit.Hash.String())
	}
	assert.Equal(t, []string{diamond.Tip, diamond.Merge, diamond.Left, diamond.Right, diamond.Root}, hashes)
	assert.ElementsMatch(t, diamond.ReachableHashes(t, diamond.Tip), hashes)

	merge := log[1]
	assert.Equal(t, []objects.Hash{objects.Hash(diamond.Left), objects.Hash(diamond.Right)}, merge.Parents)
	assert.Equal(t, "Ada Lovelace", merge.Author.Name)
	assert.Equal(t, "ada@example.com", merge.Author.Email)
	assert.Equal(t, "merge right into left\n", merge.Message)
	assert.Equal(t, "right side\n\nwith a second paragraph\n", log[3].Message)

	when, err := merge.Author.When()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000+4*60), when.Unix())
}

func TestSession_Object(t *testing.T) {
	diamond := testutils.SetupDiamondRepository(t)
	session := openTestSession(t, diamond.GitDir)

	object, err := session.Object(objects.Hash(diamond.Root))

	require.NoError(t, err)
	assert.Equal(t, objects.CommitKind, object.Kind)
	assert.Equal(t, len(object.Data), object.Size)
	assert.Same(t, session.Store(), session.Store())
}

// TestOpen_ConfigUnreadable verifies an unreadable config file fails the open.
func TestOpen_ConfigUnreadable(t *testing.T) {
	gitDir := testutils.SetupTestRepo(t)
	require.NoError(t, os.Mkdir(filepath.Join(gitDir, constants.Config), constants.DirPerms))

	_, err := Open(gitDir)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}
