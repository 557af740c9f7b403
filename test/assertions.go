// Package test holds assertions shared by the package tests.
package test

import (
	"errors"
	"testing"
)

// AssertWantErr checks err against the expected message. An empty
// wantErr expects no error. It reports whether an error was wanted or
// received, so callers can stop checking the result.
func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// AssertErrorIs is AssertWantErr for sentinel errors matched with
// errors.Is. A nil target expects no error.
func AssertErrorIs(err, target error, caller string, t *testing.T) bool {
	t.Helper()
	switch {
	case target == nil && err != nil:
		t.Errorf("%s unexpected error %v", caller, err)
	case target != nil && !errors.Is(err, target):
		t.Errorf("%s error = %v, want %v", caller, err, target)
	}
	return err != nil || target != nil
}
