package utils

import (
	"regexp"
	"testing"
)

func TestNewOrderReferenceFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^alpha1_\d+_[0-9a-z]{7}$`)

	ref := NewOrderReference()
	if !pattern.MatchString(ref) {
		t.Fatalf("unexpected reference format: %q", ref)
	}
}

func TestNewOrderReferenceDoesNotCollide(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		ref := NewOrderReference()
		if _, exists := seen[ref]; exists {
			t.Fatalf("duplicate reference after %d samples: %q", i, ref)
		}
		seen[ref] = struct{}{}
	}
}
