// Package tester holds the small assertion helpers shared by the unit
// tests that do not need testify's full API.
package tester

import (
	"reflect"
	"strings"
	"testing"
)

// Eq asserts got == want, using reflect.DeepEqual for non-comparable types.
func Eq[T any](t *testing.T, got, want T, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		fail(t, msgAndArgs, "got=%v want=%v", got, want)
	}
}

// True asserts that cond holds.
func True(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		fail(t, msgAndArgs, "expected condition to be true")
	}
}

// False asserts that cond does not hold.
func False(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if cond {
		fail(t, msgAndArgs, "expected condition to be false")
	}
}

// NoErr asserts that err is nil.
func NoErr(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		fail(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// Contains asserts that s contains sub.
func Contains(t *testing.T, s, sub string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(s, sub) {
		fail(t, msgAndArgs, "%q not found in %q", sub, s)
	}
}

func fail(t *testing.T, msgAndArgs []any, format string, args ...any) {
	t.Helper()
	if len(msgAndArgs) > 0 {
		t.Fatalf("%v: "+format, append([]any{msgAndArgs[0]}, args...)...)
	}
	t.Fatalf(format, args...)
}
