package internal

import "crosswarped.com/quintet/pkg/primitives"

// RemainderCache is the set of every 20-letter used mask that can still be
// completed: a used mask is present iff its 6-letter complement contains
// some accepted word plus one spare letter. The combiner consults it before
// the exact leftover lookup to discard dead pair-of-pair candidates.
//
// Built once from the frozen word index; read-only afterwards.
type RemainderCache map[primitives.LetterSet]struct{}

// BuildRemainderCache enumerates, for every word mask, the 21 ways of
// adding one unused letter, and records the complement of each result.
func BuildRemainderCache(idx *WordIndex) RemainderCache {
	cache := make(RemainderCache)
	for _, mask := range idx.Masks() {
		for letter := primitives.LetterSet(1); letter <= primitives.AllLetters; letter <<= 1 {
			if mask&letter != 0 {
				continue
			}
			cache[(mask|letter)^primitives.AllLetters] = struct{}{}
		}
	}
	return cache
}

// Contains reports whether the used mask can still lead to a solution.
func (c RemainderCache) Contains(used primitives.LetterSet) bool {
	_, ok := c[used]
	return ok
}
