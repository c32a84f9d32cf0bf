package quintet

import (
	"context"
	"iter"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/quintet/pkg/primitives"
)

// Solutions runs the search and yields each solution exactly once.
//
// A valid combination uses 25 of the 26 letters, so every solution has
// exactly one missing letter M. The searches for different M are fully
// independent over the frozen index structures and run on parallel
// workers; each emits its solutions without any post-hoc deduplication
// (see canonicalDuo for the rule that makes emission unique).
//
// The build phase runs first if it has not already. Like the rest of the
// search, iteration stops early when ctx is cancelled.
func (s *Solver) Solutions(ctx context.Context) iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		if err := s.Build(ctx); err != nil {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		start := time.Now()
		out := make(chan Solution, 64)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workers())
		go func() {
			for i := range primitives.NumLetters {
				missing := primitives.LetterSet(1) << i
				g.Go(func() error {
					return s.solveMissing(gctx, missing, out)
				})
			}
			g.Wait()
			close(out)
		}()

		count := 0
		for sol := range out {
			if !yield(sol) {
				cancel()
				for range out {
					// drain so the workers can exit
				}
				return
			}
			count++
		}
		s.stats.Solutions = count
		s.stats.CombineDuration = time.Since(start)
		log.Debug().
			Int("solutions", count).
			Dur("elapsed", s.stats.CombineDuration).
			Msg("combine finished")
	}
}

// solveMissing enumerates every solution whose unused letter is missing.
//
// pair1 candidates are the pairs starting with the two alphabetically first
// letters still available; given pair1, pair2 candidates start with the two
// first letters available after it. The leftover word mask is then forced,
// and is a solution iff a real word carries exactly those five letters.
func (s *Solver) solveMissing(ctx context.Context, missing primitives.LetterSet, out chan<- Solution) error {
	key1 := primitives.TwoLowestOutside(missing)
	for _, pair1 := range s.pairs.PairsFor(key1) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !pair1.Disjoint(missing) {
			continue
		}
		if !s.hasCanonicalDuo(pair1, missing) {
			continue
		}
		used := missing | pair1
		key2 := primitives.TwoLowestOutside(used)
		for _, pair2 := range s.pairs.PairsFor(key2) {
			if !pair2.Disjoint(used) {
				continue
			}
			if !s.remainders.Contains(pair1 | pair2) {
				continue
			}
			if !s.hasCanonicalDuo(pair2, used) {
				continue
			}
			leftover := primitives.AllLetters &^ (used | pair2)
			if !s.index.Contains(leftover) {
				continue // a 5-letter gap with no real word; not an error
			}
			select {
			case out <- Solution{Pair1: pair1, Pair2: pair2, Leftover: leftover}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// canonicalDuo decides whether one decomposition of a pair mask belongs to
// the canonical grouping of the solutions it can appear in, given the
// letters already consumed (the missing letter, plus pair1 when judging
// pair2 candidates).
//
// Orient the duo so wa holds the first available letter. If the second
// available letter sits in the partner, the grouping is forced and the duo
// stands. If both key letters sit in wa, any partner word would preserve
// the pair's index key; the canonical grouping is the one whose partner
// holds the next available letter outside wa. Applying this rule at both
// pair levels means each solution survives under exactly one
// (missing, pair1, pair2) assignment. Duplicates are never emitted, so
// nothing needs filtering after the fact.
func canonicalDuo(pair, rep, excluded primitives.LetterSet) bool {
	k1 := primitives.LowestOutside(excluded)
	wa := rep
	if wa&k1 == 0 {
		wa = pair ^ rep
	}
	k2 := primitives.LowestOutside(excluded | k1)
	if wa&k2 == 0 {
		return true
	}
	next := primitives.LowestOutside(excluded | wa)
	return pair&next != 0
}

func (s *Solver) hasCanonicalDuo(pair, excluded primitives.LetterSet) bool {
	for _, rep := range s.pairs.Representatives(pair) {
		if canonicalDuo(pair, rep, excluded) {
			return true
		}
	}
	return false
}
