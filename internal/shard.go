package internal

import (
	"slices"

	"crosswarped.com/quintet/pkg/primitives"
)

// ShardMask converts a shard-letter string into a LetterSet. Characters
// outside 'a'..'z' are ignored, as are repeats.
func ShardMask(shardLetters string) primitives.LetterSet {
	var mask primitives.LetterSet
	for i := 0; i < len(shardLetters); i++ {
		c := shardLetters[i]
		if c < 'a' || c > 'z' {
			continue
		}
		mask |= 1 << (c - 'a')
	}
	return mask
}

// partitionBySignature splits the index's masks into independent buckets by
// which shard letters each mask contains.
//
// The buckets partition only the pair builder's outer loop: every bucket is
// still paired against the whole index, so no cross-bucket pair can be
// lost. An empty or degenerate shard mask yields a single bucket holding
// the whole index.
func partitionBySignature(idx *WordIndex, shardMask primitives.LetterSet) [][]primitives.LetterSet {
	masks := idx.Masks()
	if shardMask == 0 {
		return [][]primitives.LetterSet{masks}
	}

	buckets := make(map[primitives.LetterSet][]primitives.LetterSet)
	for _, mask := range masks {
		sig := mask & shardMask
		buckets[sig] = append(buckets[sig], mask)
	}

	sigs := make([]primitives.LetterSet, 0, len(buckets))
	for sig := range buckets {
		sigs = append(sigs, sig)
	}
	slices.Sort(sigs)

	parts := make([][]primitives.LetterSet, 0, len(sigs))
	for _, sig := range sigs {
		parts = append(parts, buckets[sig])
	}
	return parts
}
