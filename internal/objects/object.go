package objects

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KostasZigo/mygit/internal/constants"
)

// Kind is the type tag found in an object header.
type Kind string

const (
	TreeKind   Kind = "tree"
	CommitKind Kind = "commit"
	BlobKind   Kind = "blob"
	TagKind    Kind = "tag"
)

func (k Kind) IsValid() bool {
	switch k {
	case TreeKind, CommitKind, BlobKind, TagKind:
		return true
	default:
		return false
	}
}

// Object is a decompressed loose object.
// Only commit bodies are decoded further; trees, blobs and tags keep their raw body.
type Object struct {
	Hash Hash
	Kind Kind
	// Size is the length declared in the header. It is not checked against Data.
	Size int
	Data string
}

// ParseObject splits decompressed object text of the form "<kind> <size>\x00<body>".
func ParseObject(hash Hash, text string) (*Object, error) {
	segments := strings.Split(text, string(constants.NullByte))
	if len(segments) != 2 {
		return nil, invalidObject(hash, "framing",
			fmt.Sprintf("expected exactly one NUL separator, found %d", len(segments)-1), text)
	}
	header, body := segments[0], segments[1]

	tokens := strings.Split(header, " ")
	if len(tokens) != 2 {
		return nil, invalidObject(hash, "header",
			fmt.Sprintf("expected \"<kind> <size>\", found %d token(s)", len(tokens)), text)
	}

	kind := Kind(tokens[0])
	if !kind.IsValid() {
		return nil, invalidObject(hash, "kind", fmt.Sprintf("unknown object kind %q", tokens[0]), text)
	}

	declared, err := strconv.ParseUint(tokens[1], 10, 63)
	if err != nil {
		return nil, invalidObject(hash, "size", fmt.Sprintf("size %q is not a non-negative integer", tokens[1]), text)
	}
	size := int(declared)

	if size != len(body) {
		slog.Warn("Object size does not match header",
			"hash", hash,
			"declared", size,
			"actual", len(body))
	}

	return &Object{
		Hash: hash,
		Kind: kind,
		Size: size,
		Data: body,
	}, nil
}

// Commit decodes the body of a commit object.
func (o *Object) Commit() (*Commit, error) {
	if o.Kind != CommitKind {
		return nil, invalidObject(o.Hash, "kind", fmt.Sprintf("expected %s object, got %s", CommitKind, o.Kind), string(o.Kind))
	}
	return ParseCommitData(o.Data, o.Hash)
}

func (o *Object) String() string {
	return fmt.Sprintf("Object{hash: %s, kind: %s, size: %d bytes}", o.Hash, o.Kind, o.Size)
}
