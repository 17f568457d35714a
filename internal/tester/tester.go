package tester

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

// Eq asserts that got == want using reflect.DeepEqual for non-comparable types.
func Eq[T any](t *testing.T, got, want T, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: got=%v want=%v", msgAndArgs[0], got, want)
		}
		t.Fatalf("got=%v want=%v", got, want)
	}
}

// True asserts that cond is true.
func True(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		fail(t, "expected condition to be true", msgAndArgs...)
	}
}

// False asserts that cond is false.
func False(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if cond {
		fail(t, "expected condition to be false", msgAndArgs...)
	}
}

// NoErr asserts that err is nil.
func NoErr(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: %v", msgAndArgs[0], err)
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// ErrIs asserts that errors.Is(err, target).
func ErrIs(t *testing.T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: err=%v want %v", msgAndArgs[0], err, target)
		}
		t.Fatalf("err=%v want %v", err, target)
	}
}

// Subset asserts that every element of got appears in set.
func Subset[T comparable](t *testing.T, got, set []T, msgAndArgs ...any) {
	t.Helper()
	for _, g := range got {
		if !slices.Contains(set, g) {
			if len(msgAndArgs) > 0 {
				t.Fatalf("%v: %v not in %v", msgAndArgs[0], g, set)
			}
			t.Fatalf("%v not in %v", g, set)
		}
	}
}

func fail(t *testing.T, def string, msgAndArgs ...any) {
	t.Helper()
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
			t.Fatalf(format, msgAndArgs[1:]...)
		}
		t.Fatalf("%v", msgAndArgs[0])
	}
	t.Fatal(def)
}
