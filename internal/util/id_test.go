package util

import (
	"errors"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		n    int
		want string
	}{
		{"3f6c2a11-9b1e-4f0d-8a77-5dc3f2e9ab01", 0, "3f6c2a11"},
		{"3f6c2a11-9b1e-4f0d-8a77-5dc3f2e9ab01", 12, "3f6c2a11-9b1"},
		{"short", 8, "short"},
		{"", 8, ""},
	}

	for _, tc := range tests {
		if got := ShortID(tc.id, tc.n); got != tc.want {
			t.Errorf("ShortID(%q, %d) = %q, want %q", tc.id, tc.n, got, tc.want)
		}
	}
}

func TestResolveTaskID(t *testing.T) {
	ids := []string{
		"3f6c2a11-9b1e-4f0d-8a77-5dc3f2e9ab01",
		"3f9d0b22-1111-2222-3333-444455556666",
		"a0a0a0a0-bbbb-cccc-dddd-eeeeffff0000",
	}

	t.Run("exact match", func(t *testing.T) {
		got, err := ResolveTaskID(ids, ids[0])
		if err != nil {
			t.Fatal(err)
		}
		if got != ids[0] {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unique prefix", func(t *testing.T) {
		got, err := ResolveTaskID(ids, "a0a0")
		if err != nil {
			t.Fatal(err)
		}
		if got != ids[2] {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := ResolveTaskID(ids, "3f")
		if !errors.Is(err, ErrAmbiguousID) {
			t.Errorf("expected ErrAmbiguousID, got %v", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolveTaskID(ids, "zzzz")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ResolveTaskID(ids, "")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
