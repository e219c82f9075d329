package objects

import "fmt"

// StorageError reports an object file that is missing or cannot be read.
type StorageError struct {
	Hash Hash
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to locate object %s: %v", e.Hash, e.Err)
	}
	return fmt.Sprintf("failed to read object file %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// CorruptObjectError reports an object file whose compressed stream cannot be inflated.
type CorruptObjectError struct {
	Hash Hash
	Err  error
}

func (e *CorruptObjectError) Error() string {
	return fmt.Sprintf("object %s is corrupt: failed to decompress: %v", e.Hash, e.Err)
}

func (e *CorruptObjectError) Unwrap() error {
	return e.Err
}

// InvalidObjectError reports a framing or commit grammar violation.
// Field names the offending part and Input carries the raw text for diagnostics.
type InvalidObjectError struct {
	Hash   Hash
	Field  string
	Reason string
	Input  string
}

func (e *InvalidObjectError) Error() string {
	if e.Hash == "" {
		return fmt.Sprintf("invalid object: %s: %s: %q", e.Field, e.Reason, e.Input)
	}
	return fmt.Sprintf("invalid object %s: %s: %s: %q", e.Hash, e.Field, e.Reason, e.Input)
}

func invalidObject(hash Hash, field, reason, input string) *InvalidObjectError {
	return &InvalidObjectError{
		Hash:   hash,
		Field:  field,
		Reason: reason,
		Input:  input,
	}
}
