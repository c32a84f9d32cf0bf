package quintet

import (
	"context"
	"iter"
	"slices"

	"crosswarped.com/quintet/pkg/primitives"
)

// Solution is one disjoint cover of 25 letters: two word pairs plus a
// leftover word, all as letter sets. The constituent words of each pair are
// recovered from the pair inventory during expansion.
type Solution struct {
	Pair1    primitives.LetterSet
	Pair2    primitives.LetterSet
	Leftover primitives.LetterSet
}

// Missing returns the single alphabet letter the solution does not use.
func (sol Solution) Missing() primitives.LetterSet {
	return primitives.AllLetters &^ (sol.Pair1 | sol.Pair2 | sol.Leftover)
}

// Expand yields the concrete five-word combinations behind a solution,
// each sorted alphabetically.
//
// Pair masks are decomposed through their stored representatives, keeping
// only canonical duos so a five-mask set that several pair masks could
// reach is produced exactly once across all solutions. By default every
// word of each anagram class is substituted in (a class of size k
// multiplies the output by k); under CollapseAnagrams each class
// contributes only its alphabetically first word.
func (s *Solver) Expand(sol Solution) iter.Seq[[5]string] {
	return func(yield func([5]string) bool) {
		missing := sol.Missing()
		for _, duo1 := range s.canonicalDuos(sol.Pair1, missing) {
			for _, duo2 := range s.canonicalDuos(sol.Pair2, missing|sol.Pair1) {
				masks := [5]primitives.LetterSet{duo1[0], duo1[1], duo2[0], duo2[1], sol.Leftover}
				if !s.expandClasses(masks, yield) {
					return
				}
			}
		}
	}
}

// canonicalDuos decomposes a pair mask into its canonical word-mask duos.
func (s *Solver) canonicalDuos(pair, excluded primitives.LetterSet) [][2]primitives.LetterSet {
	var duos [][2]primitives.LetterSet
	for _, rep := range s.pairs.Representatives(pair) {
		if canonicalDuo(pair, rep, excluded) {
			duos = append(duos, [2]primitives.LetterSet{rep, pair ^ rep})
		}
	}
	return duos
}

// expandClasses walks the cross-product of the five anagram classes.
func (s *Solver) expandClasses(masks [5]primitives.LetterSet, yield func([5]string) bool) bool {
	var classes [5][]string
	for i, mask := range masks {
		words := s.index.Words(mask)
		if s.params.CollapseAnagrams {
			words = words[:1]
		}
		classes[i] = words
	}

	var combo [5]string
	var walk func(i int) bool
	walk = func(i int) bool {
		if i == len(masks) {
			sorted := combo
			slices.Sort(sorted[:])
			return yield(sorted)
		}
		for _, word := range classes[i] {
			combo[i] = word
			if !walk(i + 1) {
				return false
			}
		}
		return true
	}
	return walk(0)
}

// Combinations chains Solutions and Expand: it yields every five-word
// combination, honoring the anagram policy.
func (s *Solver) Combinations(ctx context.Context) iter.Seq[[5]string] {
	return func(yield func([5]string) bool) {
		for sol := range s.Solutions(ctx) {
			for combo := range s.Expand(sol) {
				if !yield(combo) {
					return
				}
			}
		}
	}
}
