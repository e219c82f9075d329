package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/KostasZigo/mygit/internal/history"
	"github.com/KostasZigo/mygit/internal/objects"
	"gopkg.in/ini.v1"
)

var (
	// ErrRepositoryNotFound is returned when no .git directory exists at or above the start path.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrUnsupportedFormat is returned for an unknown core.repositoryformatversion.
	ErrUnsupportedFormat = errors.New("unsupported repository format")
)

// Session is an opened repository. It ties together HEAD resolution,
// the loose object store and the commit graph walk.
type Session struct {
	gitDir string
	bare   bool
	store  *objects.ObjectStore
}

// FindRoot locates the .git directory by walking up the directory tree from start.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		gitDir := filepath.Join(dir, constants.GitDir)
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return gitDir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .git
			return "", fmt.Errorf("%w: %s directory not found from %s", ErrRepositoryNotFound, constants.GitDir, start)
		}
		dir = parent
	}
}

// Open opens the repository whose metadata directory is gitDir.
func Open(gitDir string) (*Session, error) {
	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", gitDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open repository: %s is not a directory", gitDir)
	}

	session := &Session{
		gitDir: gitDir,
		store:  objects.NewObjectStore(gitDir),
	}
	if err := session.loadConfig(); err != nil {
		return nil, err
	}

	slog.Debug("Opened repository",
		"gitDir", gitDir,
		"bare", session.bare)

	return session, nil
}

// Discover finds the repository containing start and opens it.
func Discover(start string) (*Session, error) {
	gitDir, err := FindRoot(start)
	if err != nil {
		return nil, err
	}
	return Open(gitDir)
}

// loadConfig reads the [core] section of the INI config file if present.
func (s *Session) loadConfig() error {
	configPath := filepath.Join(s.gitDir, constants.Config)
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Repository has no config file", "path", configPath)
		return nil
	}

	cfg, err := ini.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to read repository config %s: %w", configPath, err)
	}

	core := cfg.Section("core")

	// Key creates missing keys, so presence is checked first. Absent means version 0.
	version := constants.MinRepositoryFormatVersion
	if core.HasKey("repositoryformatversion") {
		key := core.Key("repositoryformatversion")
		version, err = key.Int()
		if err != nil {
			return fmt.Errorf("%w: core.repositoryformatversion %q", ErrUnsupportedFormat, key.String())
		}
	}
	if version < constants.MinRepositoryFormatVersion || version > constants.MaxRepositoryFormatVersion {
		return fmt.Errorf("%w: core.repositoryformatversion %d", ErrUnsupportedFormat, version)
	}
	s.bare = core.Key("bare").MustBool(false)

	return nil
}

// GitDir returns the repository metadata directory.
func (s *Session) GitDir() string {
	return s.gitDir
}

// IsBare reports core.bare from the repository config.
func (s *Session) IsBare() bool {
	return s.bare
}

// Store returns the loose object store of the repository.
func (s *Session) Store() *objects.ObjectStore {
	return s.store
}

// Object reads the object stored under hash.
func (s *Session) Object(hash objects.Hash) (*objects.Object, error) {
	return s.store.Get(hash)
}

// ReadCommit reads hash and decodes it as a commit.
func (s *Session) ReadCommit(hash objects.Hash) (*objects.Commit, error) {
	object, err := s.store.Get(hash)
	if err != nil {
		return nil, err
	}
	return object.Commit()
}

// Log reads the commit at hash and traces its ancestry.
func (s *Session) Log(hash objects.Hash, options ...history.Option) ([]*objects.Commit, error) {
	start, err := s.ReadCommit(hash)
	if err != nil {
		return nil, err
	}
	return history.TraceCommitGraph(s, start, options...)
}
