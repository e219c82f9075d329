package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	LogCmdName      = "log"
	CatFileCmdName  = "cat-file"
	RevParseCmdName = "rev-parse"
)

// Repository directory and file names define the git metadata structure.
const (
	// GitDir is the repository metadata directory searched for when locating the root.
	GitDir = ".git"

	// Objects stores content-addressable loose objects (blobs, trees, commits, tags).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Head points to current branch or detached commit.
	Head = "HEAD"

	// Config is the INI repository configuration file.
	Config = "config"
)

// Default repository values.
const (
	// DefaultBranch is the branch used by test repositories.
	DefaultBranch = "main"

	// SymbolicRefPrefix introduces a one-level redirect in HEAD.
	SymbolicRefPrefix = "ref: "

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = SymbolicRefPrefix + "refs/heads/"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2

	// ShortHashLength is the abbreviation used for merge parents in log output.
	ShortHashLength = 7
)

// Commit metadata line prefixes.
const (
	// CommitTreePrefix marks the tree line in commit objects.
	CommitTreePrefix = "tree "

	// CommitParentPrefix marks parent commit lines in commit objects.
	CommitParentPrefix = "parent "

	// CommitAuthorPrefix marks author metadata in commit objects.
	CommitAuthorPrefix = "author "

	// CommitCommitterPrefix marks committer metadata in commit objects.
	CommitCommitterPrefix = "committer "
)

// Object format constants.
const (
	// NullByte separates header from content in objects.
	NullByte = '\x00'

	// MessageSeparator splits commit metadata from the message.
	MessageSeparator = "\n\n"
)

// Supported values of core.repositoryformatversion.
const (
	MinRepositoryFormatVersion = 0
	MaxRepositoryFormatVersion = 1
)
