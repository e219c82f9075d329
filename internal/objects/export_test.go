package objects

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustParseObject parses object text and fails test on error.
func mustParseObject(t *testing.T, hash Hash, text string) *Object {
	t.Helper()

	object, err := ParseObject(hash, text)
	if err != nil {
		t.Fatalf("Failed to parse object: %v", err)
	}

	return object
}

// mustParseCommit parses a commit body and fails test on error.
func mustParseCommit(t *testing.T, body string, hash Hash) *Commit {
	t.Helper()

	commit, err := ParseCommitData(body, hash)
	if err != nil {
		t.Fatalf("Failed to parse commit: %v", err)
	}

	return commit
}

// assertInvalidObject verifies err is an InvalidObjectError naming field.
func assertInvalidObject(t *testing.T, err error, field string) *InvalidObjectError {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected InvalidObjectError for field [%s], got nil", field)
	}

	var invalid *InvalidObjectError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidObjectError, got %T: %v", err, err)
	}

	if invalid.Field != field {
		t.Errorf("Expected offending field [%s], got [%s] (%v)", field, invalid.Field, err)
	}

	if !strings.Contains(err.Error(), field) {
		t.Errorf("Expected error message to name field [%s], got [%s]", field, err.Error())
	}

	return invalid
}

// assertCommitEqual verifies two commits match in all fields.
func assertCommitEqual(t *testing.T, actual, expected *Commit) {
	t.Helper()

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("Commit mismatch (-expected +actual):\n%s", diff)
	}
}
