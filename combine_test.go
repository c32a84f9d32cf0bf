package quintet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/quintet/pkg/primitives"
)

func mask(t *testing.T, word string) primitives.LetterSet {
	t.Helper()
	m, err := primitives.MakeLetterSet(word)
	require.NoError(t, err)
	return m
}

func TestCanonicalDuo(t *testing.T) {
	z := primitives.LetterSet(1) << ('z' - 'a')

	tests := []struct {
		name     string
		wordA    string
		wordB    string
		excluded primitives.LetterSet
		want     bool
	}{
		{
			// Second key letter b sits in the partner: grouping is forced.
			name:  "key letters split across the duo",
			wordA: "aghij", wordB: "bcdef",
			excluded: z,
			want:     true,
		},
		{
			// Both key letters in one word; the partner holds the next
			// available letter f, so this is the canonical grouping.
			name:  "partner holds the next available letter",
			wordA: "abcde", wordB: "fghij",
			excluded: z,
			want:     true,
		},
		{
			// Both key letters in abcde but the next available letter f is
			// outside the pair: some other word must own f, and the
			// canonical grouping pairs abcde with that word instead.
			name:  "partner skips the next available letter",
			wordA: "abcde", wordB: "klmno",
			excluded: z,
			want:     false,
		},
		{
			// Same rule at the pair2 level, with pair1's letters consumed.
			name:  "second pair canonical",
			wordA: "klmno", wordB: "pqrst",
			excluded: z | 0b1111111111, // a..j
			want:     true,
		},
		{
			name:  "second pair skips the next available letter",
			wordA: "klmno", wordB: "uvwxy",
			excluded: z | 0b1111111111,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := mask(t, tt.wordA), mask(t, tt.wordB)
			pair := a | b
			// The verdict must not depend on which constituent was stored
			// as the representative.
			assert.Equal(t, tt.want, canonicalDuo(pair, a, tt.excluded))
			assert.Equal(t, tt.want, canonicalDuo(pair, b, tt.excluded))
		})
	}
}
