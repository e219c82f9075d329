package objects

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/mygit/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// ObjectStore reads loose objects from <gitDir>/objects.
// Nothing is cached: every Get re-reads and re-inflates the file.
type ObjectStore struct {
	gitDir string // Path to the repository metadata directory
}

func NewObjectStore(gitDir string) *ObjectStore {
	return &ObjectStore{
		gitDir: gitDir,
	}
}

// ObjectPath returns <gitDir>/objects/<first 2 chars>/<rest>.
func (store *ObjectStore) ObjectPath(hash Hash) string {
	dir, file := hash.Shard()
	return filepath.Join(store.gitDir, constants.Objects, dir, file)
}

// Get reads, inflates and frames the object stored under hash.
func (store *ObjectStore) Get(hash Hash) (*Object, error) {
	text, err := store.ReadRaw(hash)
	if err != nil {
		return nil, err
	}
	return ParseObject(hash, text)
}

// ReadRaw returns the decompressed object text without parsing its framing.
func (store *ObjectStore) ReadRaw(hash Hash) (string, error) {
	if _, err := ParseHash(string(hash)); err != nil {
		return "", &StorageError{Hash: hash, Err: err}
	}

	objectFile := store.ObjectPath(hash)

	// Read compressed file
	compressedData, err := os.ReadFile(objectFile)
	if err != nil {
		return "", &StorageError{Hash: hash, Path: objectFile, Err: err}
	}

	slog.Debug("Read object file",
		"hash", hash,
		"path", objectFile,
		"compressedBytes", len(compressedData))

	data, err := decompress(compressedData)
	if err != nil {
		return "", &CorruptObjectError{Hash: hash, Err: err}
	}

	return string(data), nil
}

func decompress(compressedData []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for compressed data: %w", err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("failed to read decompressed data: %w", err)
	}

	return buffer.Bytes(), nil
}

// Exists checks if an object exists in storage.
// Any stat failure, not only a missing file, counts as absent.
func (store *ObjectStore) Exists(hash Hash) bool {
	if _, err := ParseHash(string(hash)); err != nil {
		return false
	}
	_, err := os.Stat(store.ObjectPath(hash))
	return err == nil
}
