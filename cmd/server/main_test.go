package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		weak   bool
	}{
		{"short", true},
		{"change-me-in-production-change-me-in-production", true},
		{"0f9c4e1b7a2d48e6b3c5a9d1e7f2b4c8", false},
	}
	for _, tc := range cases {
		if got := isWeakSecret(tc.secret); got != tc.weak {
			t.Fatalf("isWeakSecret(%q) want %v got %v", tc.secret, tc.weak, got)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", " admin "); got != "admin" {
		t.Fatalf("unexpected value: %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("no values should yield empty string")
	}
}
