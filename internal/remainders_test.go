package internal

import (
	"testing"

	"crosswarped.com/quintet/pkg/primitives"
)

func TestRemainderCache(t *testing.T) {
	idx := BuildWordIndex([]string{"bcdef", "klmno"})
	cache := BuildRemainderCache(idx)

	used := func(free string) primitives.LetterSet {
		t.Helper()
		var f primitives.LetterSet
		for i := 0; i < len(free); i++ {
			f |= 1 << (free[i] - 'a')
		}
		if f.Count() != 6 {
			t.Fatalf("free letters %q must leave 6 letters", free)
		}
		return primitives.AllLetters ^ f
	}

	tests := []struct {
		name string
		free string
		want bool
	}{
		{"word plus spare letter a", "abcdef", true},
		{"word plus spare letter g", "bcdefg", true},
		{"second word plus spare", "klmnoz", true},
		{"word split across gap", "abcdeg", false},
		{"no word inside free letters", "uvwxyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cache.Contains(used(tt.free)); got != tt.want {
				t.Errorf("Contains(free=%s) = %v, want %v", tt.free, got, tt.want)
			}
		})
	}
}

func TestRemainderCache_Empty(t *testing.T) {
	cache := BuildRemainderCache(BuildWordIndex(nil))
	if len(cache) != 0 {
		t.Errorf("cache for empty index has %d entries", len(cache))
	}
}
