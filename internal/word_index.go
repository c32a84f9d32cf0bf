package internal

import (
	"slices"

	"crosswarped.com/quintet/pkg/primitives"
)

// WordIndex groups accepted words by their letter sets.
//
// Each entry is an anagram class: every word under one mask is a letter
// permutation of the others. The index also keeps the masks grouped by
// their alphabetically first letter, which is the iteration order the pair
// builder wants. A WordIndex is immutable once BuildWordIndex returns.
type WordIndex struct {
	classes  map[primitives.LetterSet][]string
	byLowest map[primitives.LetterSet][]primitives.LetterSet
	maxGroup primitives.LetterSet // highest first-letter group key present

	accepted int
	rejected int
}

// BuildWordIndex encodes and indexes the given raw tokens.
//
// Tokens that fail encoding (wrong length, repeated letters, non-letter
// characters) are counted as rejected and skipped; they are never fatal.
func BuildWordIndex(words []string) *WordIndex {
	idx := &WordIndex{
		classes:  make(map[primitives.LetterSet][]string),
		byLowest: make(map[primitives.LetterSet][]primitives.LetterSet),
	}
	for _, word := range words {
		mask, err := primitives.MakeLetterSet(word)
		if err != nil {
			idx.rejected++
			continue
		}
		class := idx.classes[mask]
		if slices.Contains(class, word) {
			continue // duplicate token
		}
		idx.classes[mask] = append(class, word)
		idx.accepted++
	}

	for mask := range idx.classes {
		lowest := mask.Lowest()
		idx.byLowest[lowest] = append(idx.byLowest[lowest], mask)
		if lowest > idx.maxGroup {
			idx.maxGroup = lowest
		}
	}

	// Freeze with a deterministic order: words sorted within each class
	// (the collapse policy picks the first), masks sorted within each group.
	for _, class := range idx.classes {
		slices.Sort(class)
	}
	for _, group := range idx.byLowest {
		slices.Sort(group)
	}
	return idx
}

// Contains reports whether any accepted word has exactly this letter set.
func (idx *WordIndex) Contains(mask primitives.LetterSet) bool {
	_, ok := idx.classes[mask]
	return ok
}

// Words returns the anagram class for mask, sorted, or nil.
func (idx *WordIndex) Words(mask primitives.LetterSet) []string {
	return idx.classes[mask]
}

// Group returns the masks whose alphabetically first letter is the given
// single-letter set, sorted, or nil.
func (idx *WordIndex) Group(lowest primitives.LetterSet) []primitives.LetterSet {
	return idx.byLowest[lowest]
}

// MaxGroup returns the highest first-letter group key present in the index.
func (idx *WordIndex) MaxGroup() primitives.LetterSet {
	return idx.maxGroup
}

// Masks returns every distinct letter set in the index, in first-letter
// group order.
func (idx *WordIndex) Masks() []primitives.LetterSet {
	masks := make([]primitives.LetterSet, 0, len(idx.classes))
	for lowest := primitives.LetterSet(1); lowest != 0 && lowest <= idx.maxGroup; lowest <<= 1 {
		masks = append(masks, idx.byLowest[lowest]...)
	}
	return masks
}

// Accepted returns the number of accepted words.
func (idx *WordIndex) Accepted() int { return idx.accepted }

// Rejected returns the number of rejected tokens.
func (idx *WordIndex) Rejected() int { return idx.rejected }

// ClassCount returns the number of distinct letter sets.
func (idx *WordIndex) ClassCount() int { return len(idx.classes) }
