package internal

import (
	"context"
	"runtime"
	"slices"

	"github.com/fatih/semgroup"

	"crosswarped.com/quintet/pkg/primitives"
)

// PairSet is the frozen inventory of all disjoint word-mask pairs.
//
// The table maps each 10-letter pair mask to its representatives: one entry
// per generating duo of word masks, storing only the numerically smaller
// constituent (the other is the pair mask XOR the representative). The same
// pair mask can arise from more than one duo, e.g. "abcde"+"fghij" and
// "abcdf"+"eghij", so the representatives form a slice.
//
// The index maps the two alphabetically smallest letters of a pair mask to
// every pair mask starting with those letters, which is how the combiner
// retrieves candidates.
type PairSet struct {
	table map[primitives.LetterSet][]primitives.LetterSet
	index map[primitives.LetterSet][]primitives.LetterSet
	duos  int
}

// shardPairs is the locally-owned output of one shard worker.
type shardPairs struct {
	table map[primitives.LetterSet][]primitives.LetterSet
	duos  int
}

// BuildPairSet combines every word mask with every other disjoint word mask.
//
// Work is partitioned by the shard signature of the alphabetically-first
// constituent, so shard workers share no mutable state and the per-shard
// tables merge by concatenation. The shard letters only balance work; the
// resulting PairSet is identical for any shard configuration.
func BuildPairSet(ctx context.Context, idx *WordIndex, shardLetters string, workers int) (*PairSet, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	parts := partitionBySignature(idx, ShardMask(shardLetters))

	results := make([]*shardPairs, len(parts))
	sg := semgroup.NewGroup(ctx, int64(workers))
	for i, part := range parts {
		sg.Go(func() error {
			results[i] = buildShard(ctx, idx, part)
			return ctx.Err()
		})
	}
	if err := sg.Wait(); err != nil {
		return nil, err
	}

	return mergeShards(results), nil
}

// buildShard pairs each first word in the bucket against every group of
// masks with a strictly higher first letter. An unordered pair {m1, m2} is
// generated exactly once, from the side with the lower first letter.
func buildShard(ctx context.Context, idx *WordIndex, firstWords []primitives.LetterSet) *shardPairs {
	shard := &shardPairs{table: make(map[primitives.LetterSet][]primitives.LetterSet)}
	limit := idx.MaxGroup()
	for _, first := range firstWords {
		if ctx.Err() != nil {
			return shard
		}
		// Skip groups at or below this word's own first letter, plus any
		// letter the word already uses.
		masked := first | (first.Lowest() - 1)
		for probe := primitives.LowestOutside(masked); probe != 0 && probe <= limit; probe <<= 1 {
			if probe&first != 0 {
				continue
			}
			for _, second := range idx.Group(probe) {
				if !first.Disjoint(second) {
					continue
				}
				pair := first | second
				shard.table[pair] = append(shard.table[pair], min(first, second))
				shard.duos++
			}
		}
	}
	return shard
}

// mergeShards concatenates the per-shard inventories into one PairSet,
// entering each pair mask into the index exactly once even when several
// shards produced it.
func mergeShards(shards []*shardPairs) *PairSet {
	ps := &PairSet{
		table: make(map[primitives.LetterSet][]primitives.LetterSet),
		index: make(map[primitives.LetterSet][]primitives.LetterSet),
	}
	for _, shard := range shards {
		for pair, reps := range shard.table {
			existing, seen := ps.table[pair]
			ps.table[pair] = append(existing, reps...)
			if !seen {
				key := pair.TwoLowest()
				ps.index[key] = append(ps.index[key], pair)
			}
		}
		ps.duos += shard.duos
	}
	for _, pairs := range ps.index {
		slices.Sort(pairs)
	}
	return ps
}

// PairsFor returns every pair mask whose two alphabetically smallest
// letters are exactly the two letters of key, sorted.
func (ps *PairSet) PairsFor(key primitives.LetterSet) []primitives.LetterSet {
	return ps.index[key]
}

// Representatives returns one constituent word mask per duo that generated
// this pair mask; the partner of each is pair XOR representative.
func (ps *PairSet) Representatives(pair primitives.LetterSet) []primitives.LetterSet {
	return ps.table[pair]
}

// Count returns the number of distinct pair masks.
func (ps *PairSet) Count() int { return len(ps.table) }

// DuoCount returns the number of generating word-mask duos, which can
// exceed Count when distinct duos share a pair mask.
func (ps *PairSet) DuoCount() int { return ps.duos }
