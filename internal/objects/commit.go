package objects

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KostasZigo/mygit/internal/constants"
)

// signerPattern matches "<name> <<email>> <timestamp>". The name is greedy so
// it runs up to the last <...> pair; the timestamp is the trailing text.
var signerPattern = regexp.MustCompile(`^(.+) <(.+)> (.+)$`)

// Signer is the author or committer identity of a commit.
type Signer struct {
	Name  string
	Email string
	// Timestamp is kept exactly as written, usually "<unix seconds> <±HHMM>".
	Timestamp string
}

func (s Signer) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// When decodes Timestamp into a time in the signer's UTC offset.
func (s Signer) When() (time.Time, error) {
	seconds, zone, found := strings.Cut(s.Timestamp, " ")
	if !found {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: missing UTC offset", s.Timestamp)
	}
	unix, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s.Timestamp, err)
	}
	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: bad UTC offset %q", s.Timestamp, zone)
	}
	hours, err := strconv.Atoi(zone[1:3])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s.Timestamp, err)
	}
	minutes, err := strconv.Atoi(zone[3:])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s.Timestamp, err)
	}
	offset := hours*3600 + minutes*60
	if zone[0] == '-' {
		offset = -offset
	}
	return time.Unix(unix, 0).In(time.FixedZone(zone, offset)), nil
}

// Commit is the decoded body of a commit object.
type Commit struct {
	// Hash is the identity the commit was looked up by; the body never contains it.
	Hash      Hash
	TreeRef   Hash
	Parents   []Hash
	Author    Signer
	Committer Signer
	Message   string
}

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %v, author: %s, message: %q}",
		c.Hash, c.TreeRef, c.Parents, c.Author.String(), c.Message)
}

// commitParseState tracks which metadata lines may come next.
type commitParseState int

const (
	expectTree commitParseState = iota
	expectParentOrAuthor
	expectCommitter
	expectEnd
)

// ParseCommitData decodes a commit body. Metadata lines must appear as
// tree, parent*, author, committer, followed by a blank line and the message.
func ParseCommitData(body string, hash Hash) (*Commit, error) {
	metadata, message, found := strings.Cut(body, constants.MessageSeparator)
	if !found {
		metadata = strings.TrimSuffix(metadata, "\n")
	}
	if metadata == "" {
		return nil, invalidObject(hash, "metadata", "commit has no metadata", body)
	}

	commit := &Commit{
		Hash:    hash,
		Parents: []Hash{},
		Message: message,
	}

	state := expectTree
	for _, line := range strings.Split(metadata, "\n") {
		keyword, _, _ := strings.Cut(line, " ")

		switch {
		case state == expectTree && keyword == "tree":
			treeRef, err := parseRefLine(hash, "tree", constants.CommitTreePrefix, line)
			if err != nil {
				return nil, err
			}
			commit.TreeRef = treeRef
			state = expectParentOrAuthor

		case state == expectParentOrAuthor && keyword == "parent":
			parent, err := parseRefLine(hash, "parent", constants.CommitParentPrefix, line)
			if err != nil {
				return nil, err
			}
			commit.Parents = append(commit.Parents, parent)

		case state == expectParentOrAuthor && keyword == "author":
			author, err := parseSignerLine(hash, "author", constants.CommitAuthorPrefix, line)
			if err != nil {
				return nil, err
			}
			commit.Author = author
			state = expectCommitter

		case state == expectCommitter && keyword == "committer":
			committer, err := parseSignerLine(hash, "committer", constants.CommitCommitterPrefix, line)
			if err != nil {
				return nil, err
			}
			commit.Committer = committer
			state = expectEnd

		default:
			return nil, unexpectedLine(hash, state, keyword, line)
		}
	}

	switch state {
	case expectParentOrAuthor:
		return nil, invalidObject(hash, "author", "author line is missing", metadata)
	case expectCommitter:
		return nil, invalidObject(hash, "committer", "committer line is missing", metadata)
	}

	return commit, nil
}

// unexpectedLine builds the error for a line that does not fit the current state.
func unexpectedLine(hash Hash, state commitParseState, keyword, line string) *InvalidObjectError {
	switch keyword {
	case "tree", "author", "committer":
		if state > fieldState(keyword) {
			return invalidObject(hash, keyword, "duplicate or out-of-order "+keyword+" line", line)
		}
		return invalidObject(hash, keyword, keyword+" line appears before "+expectedField(state), line)
	case "parent":
		return invalidObject(hash, keyword, "parent line must directly follow tree or another parent", line)
	}
	return invalidObject(hash, expectedField(state), "expected "+expectedField(state)+" line", line)
}

// fieldState is the state in which a keyword is accepted.
func fieldState(keyword string) commitParseState {
	switch keyword {
	case "tree":
		return expectTree
	case "author":
		return expectParentOrAuthor
	default:
		return expectCommitter
	}
}

func expectedField(state commitParseState) string {
	switch state {
	case expectTree:
		return "tree"
	case expectParentOrAuthor:
		return "author"
	case expectCommitter:
		return "committer"
	default:
		return "message separator"
	}
}

// parseRefLine extracts the hash following prefix. The value is kept as written.
func parseRefLine(hash Hash, field, prefix, line string) (Hash, error) {
	value, ok := strings.CutPrefix(line, prefix)
	if !ok || value == "" {
		return "", invalidObject(hash, field, "pattern match failed", line)
	}
	return Hash(value), nil
}

func parseSignerLine(hash Hash, field, prefix, line string) (Signer, error) {
	value, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return Signer{}, invalidObject(hash, field, "pattern match failed", line)
	}
	match := signerPattern.FindStringSubmatch(value)
	if match == nil {
		return Signer{}, invalidObject(hash, field, "pattern match failed", line)
	}
	return Signer{
		Name:      match[1],
		Email:     match[2],
		Timestamp: match[3],
	}, nil
}
