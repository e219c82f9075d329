package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/KostasZigo/mygit/internal/objects"
)

var (
	// ErrUnbornBranch is returned when HEAD names a branch that has no commits yet.
	ErrUnbornBranch = errors.New("branch has no commits")

	// ErrInvalidHead is returned when HEAD or its target does not hold a usable hash.
	ErrInvalidHead = errors.New("invalid HEAD")
)

// Head resolves HEAD to a commit hash. HEAD holds either a hash or
// "ref: <path>" naming a file relative to the git directory that holds a hash.
// Only one level of indirection is followed and packed-refs are not consulted.
func (s *Session) Head() (objects.Hash, error) {
	headPath := filepath.Join(s.gitDir, constants.Head)
	content, err := os.ReadFile(headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", constants.Head, err)
	}

	value := strings.TrimSpace(string(content))
	refPath, isSymbolic := strings.CutPrefix(value, constants.SymbolicRefPrefix)
	if !isSymbolic {
		return parseHeadHash(value, constants.Head)
	}

	refPath = strings.TrimSpace(refPath)
	if refPath == "" {
		return "", fmt.Errorf("%w: empty ref in %s", ErrInvalidHead, constants.Head)
	}

	target, err := os.ReadFile(filepath.Join(s.gitDir, filepath.FromSlash(refPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrUnbornBranch, refPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read ref %s: %w", refPath, err)
	}

	targetValue := strings.TrimSpace(string(target))
	if strings.HasPrefix(targetValue, constants.SymbolicRefPrefix) {
		return "", fmt.Errorf("%w: %s is itself a symbolic ref", ErrInvalidHead, refPath)
	}
	return parseHeadHash(targetValue, refPath)
}

func parseHeadHash(value, source string) (objects.Hash, error) {
	hash, err := objects.ParseHash(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidHead, source, err)
	}
	return hash, nil
}

// ResolveRevision turns "HEAD" or a full hash into a hash.
func (s *Session) ResolveRevision(rev string) (objects.Hash, error) {
	if rev == "" || rev == constants.Head {
		return s.Head()
	}
	hash, err := objects.ParseHash(rev)
	if err != nil {
		return "", fmt.Errorf("unknown revision %q: %w", rev, err)
	}
	return hash, nil
}
