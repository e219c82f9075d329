package testutils

import (
	"bytes"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// ComputeHash calculates the SHA-1 object hash for content of the given kind.
func ComputeHash(kind string, content []byte) string {
	// format: "<kind> <size>\0<content>"
	hash := sha1.Sum(FrameObject(kind, content))
	return hex.EncodeToString(hash[:])
}

// FrameObject prepends the "<kind> <size>\0" header to content.
func FrameObject(kind string, content []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(content))
	return append([]byte(header), content...)
}

// Compress deflates data into a zlib stream as stored in loose object files.
func Compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)

	if _, err := writer.Write(data); err != nil {
		t.Fatalf("Failed to compress data: %v", err)
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to flush compressed data: %v", err)
	}

	return buffer.Bytes()
}

// SetupTestRepo creates a temporary working directory with a .git structure:
// objects/, refs/heads/, refs/tags/ and a HEAD pointing at the default branch.
// Returns the path of the .git directory.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	gitDir := filepath.Join(t.TempDir(), constants.GitDir)

	dirs := []string{
		filepath.Join(gitDir, constants.Objects),
		filepath.Join(gitDir, constants.Refs, constants.Heads),
		filepath.Join(gitDir, constants.Refs, constants.Tags),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, constants.DirPerms); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	WriteHead(t, gitDir, constants.DefaultRefPrefix+constants.DefaultBranch+"\n")

	return gitDir
}

// WriteHead overwrites the HEAD file of gitDir.
func WriteHead(t *testing.T, gitDir, content string) {
	t.Helper()

	headPath := filepath.Join(gitDir, constants.Head)
	if err := os.WriteFile(headPath, []byte(content), constants.FilePerms); err != nil {
		t.Fatalf("Failed to create %s file: %v", constants.Head, err)
	}
}

// WriteRef writes hash followed by a newline to refs/heads/<branch>.
func WriteRef(t *testing.T, gitDir, branch, hash string) {
	t.Helper()

	refPath := filepath.Join(gitDir, constants.Refs, constants.Heads, branch)
	if err := os.MkdirAll(filepath.Dir(refPath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create ref directory: %v", err)
	}
	if err := os.WriteFile(refPath, []byte(hash+"\n"), constants.FilePerms); err != nil {
		t.Fatalf("Failed to write ref %s: %v", branch, err)
	}
}

// WriteRawObject stores data compressed under objects/<first 2 chars>/<rest> without framing it.
func WriteRawObject(t *testing.T, gitDir, hash string, data []byte) string {
	t.Helper()

	objectDir := filepath.Join(gitDir, constants.Objects, hash[:constants.HashDirPrefixLength])
	objectFile := filepath.Join(objectDir, hash[constants.HashDirPrefixLength:])

	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create object directory: %v", err)
	}
	if err := os.WriteFile(objectFile, data, constants.FilePerms); err != nil {
		t.Fatalf("Failed to write object file: %v", err)
	}

	return objectFile
}

// WriteObject frames, hashes, compresses and stores content. Returns the object hash.
func WriteObject(t *testing.T, gitDir, kind string, content []byte) string {
	t.Helper()

	hash := ComputeHash(kind, content)
	WriteRawObject(t, gitDir, hash, Compress(t, FrameObject(kind, content)))
	return hash
}

// CommitFixture describes a commit body to write into a test repository.
type CommitFixture struct {
	Tree      string
	Parents   []string
	Author    string // "<name> <<email>> <timestamp>"
	Committer string // defaults to Author
	Message   string
}

// BuildCommitContent renders the fixture in commit body format:
// tree, parent*, author, committer, blank line, message.
func BuildCommitContent(fixture CommitFixture) []byte {
	var buf bytes.Buffer

	tree := fixture.Tree
	if tree == "" {
		tree = ComputeHash("tree", nil)
	}
	author := fixture.Author
	if author == "" {
		author = "Test User <test@example.com> 1700000000 +0000"
	}
	committer := fixture.Committer
	if committer == "" {
		committer = author
	}

	fmt.Fprintf(&buf, "tree %s\n", tree)
	for _, parent := range fixture.Parents {
		fmt.Fprintf(&buf, "parent %s\n", parent)
	}
	fmt.Fprintf(&buf, "author %s\n", author)
	fmt.Fprintf(&buf, "committer %s\n", committer)

	// Blank line before message
	buf.WriteByte('\n')
	buf.WriteString(fixture.Message)

	return buf.Bytes()
}

// WriteCommit stores the fixture as a commit object and returns its hash.
func WriteCommit(t *testing.T, gitDir string, fixture CommitFixture) string {
	t.Helper()

	return WriteObject(t, gitDir, "commit", BuildCommitContent(fixture))
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}
