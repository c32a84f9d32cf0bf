package primitives

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// NumLetters is the size of the alphabet the solver works over.
const NumLetters = 26

// AllLetters is the LetterSet containing every letter 'a' through 'z'.
const AllLetters LetterSet = (1 << NumLetters) - 1

// WordLength is the only word length the solver accepts.
const WordLength = 5

// ErrRejectedWord is returned by MakeLetterSet for words that cannot take
// part in the search: wrong length, repeated letters, or characters outside
// 'a'..'z'. Rejection is expected and non-fatal; callers count and skip.
var ErrRejectedWord = errors.New("rejected word")

// LetterSet efficiently represents a set of letters.
//
// Bit i is set iff letter ('a' + i) is present. Keeping the whole set in a
// single integer makes the operations the search cares about cheap:
// union is |, intersection is &, the alphabetically first letter is the
// lowest set bit.
type LetterSet uint32

// MakeLetterSet encodes word as a LetterSet.
//
// The word must consist of exactly five distinct lowercase ASCII letters;
// anything else returns ErrRejectedWord.
func MakeLetterSet(word string) (LetterSet, error) {
	if len(word) != WordLength {
		return 0, fmt.Errorf("%w: %q is not %d letters", ErrRejectedWord, word, WordLength)
	}
	var s LetterSet
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("%w: %q contains non-letter %q", ErrRejectedWord, word, c)
		}
		s |= 1 << (c - 'a')
	}
	if s.Count() != WordLength {
		return 0, fmt.Errorf("%w: %q has repeated letters", ErrRejectedWord, word)
	}
	return s, nil
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(uint32(s))
}

// Lowest returns a set holding only the alphabetically first letter of s,
// or 0 for the empty set.
func (s LetterSet) Lowest() LetterSet {
	return s & -s
}

// WithoutLowest returns s with its alphabetically first letter removed.
func (s LetterSet) WithoutLowest() LetterSet {
	return s & (s - 1)
}

// TwoLowest returns the set of the two alphabetically first letters of s.
func (s LetterSet) TwoLowest() LetterSet {
	first := s.Lowest()
	return first | (s ^ first).Lowest()
}

// Disjoint checks whether s and other share no letters.
func (s LetterSet) Disjoint(other LetterSet) bool {
	return s&other == 0
}

// ContainsAll checks whether every letter of other is also in s.
func (s LetterSet) ContainsAll(other LetterSet) bool {
	return s&other == other
}

// LowestOutside returns a set holding only the alphabetically first letter
// not present in excluded, or 0 when excluded covers the whole alphabet.
func LowestOutside(excluded LetterSet) LetterSet {
	return (^excluded & AllLetters).Lowest()
}

// TwoLowestOutside returns the set of the two alphabetically first letters
// not present in excluded.
//
// This is the canonical pair key: querying the pair index with
// TwoLowestOutside(used) yields every pair whose first two letters are the
// first two letters still available.
func TwoLowestOutside(excluded LetterSet) LetterSet {
	first := LowestOutside(excluded)
	return first | LowestOutside(excluded|first)
}

// String renders the set as its letters in alphabetical order, e.g. "abcde".
func (s LetterSet) String() string {
	var b strings.Builder
	for i := 0; i < NumLetters; i++ {
		if s&(1<<i) != 0 {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}
