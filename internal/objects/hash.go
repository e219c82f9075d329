package objects

import (
	"errors"
	"fmt"

	"github.com/KostasZigo/mygit/internal/constants"
)

// ErrInvalidHash is returned when a string cannot be used as an object hash.
var ErrInvalidHash = errors.New("invalid object hash")

// Hash is the lowercase hex content digest identifying an object.
// It is used as a lookup key only and is never recomputed from content.
type Hash string

// ParseHash validates s as a lowercase hex digest long enough to be
// sharded into objects/<xx>/<rest>.
func ParseHash(s string) (Hash, error) {
	if len(s) <= constants.HashDirPrefixLength {
		return "", fmt.Errorf("%w: %q is too short", ErrInvalidHash, s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidHash, s, c)
		}
	}
	return Hash(s), nil
}

// Shard splits the hash into its objects/ subdirectory and file name.
func (h Hash) Shard() (dir, file string) {
	return string(h[:constants.HashDirPrefixLength]), string(h[constants.HashDirPrefixLength:])
}

// Short returns the first n characters of the hash, or the whole hash if shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

func (h Hash) String() string {
	return string(h)
}
