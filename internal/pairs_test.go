package internal

import (
	"context"
	"slices"
	"testing"

	"crosswarped.com/quintet/pkg/primitives"
)

var pairFixture = []string{
	"abcde",
	"fghij",
	"klmno",
	"pqrst",
	"uvwxy",
	"bcdef", // overlaps abcde and fghij
	"edcba", // anagram of abcde, same mask
}

func buildTestPairs(t *testing.T, words []string, shardLetters string) (*WordIndex, *PairSet) {
	t.Helper()
	idx := BuildWordIndex(words)
	ps, err := BuildPairSet(context.Background(), idx, shardLetters, 2)
	if err != nil {
		t.Fatalf("BuildPairSet() error = %v", err)
	}
	return idx, ps
}

// twoLetterKeys yields every possible pair-index key.
func twoLetterKeys() []primitives.LetterSet {
	var keys []primitives.LetterSet
	for i := 0; i < primitives.NumLetters; i++ {
		for j := i + 1; j < primitives.NumLetters; j++ {
			keys = append(keys, 1<<i|1<<j)
		}
	}
	return keys
}

// bruteForceDuos counts unordered disjoint mask pairs directly.
func bruteForceDuos(idx *WordIndex) int {
	masks := idx.Masks()
	count := 0
	for i, m1 := range masks {
		for _, m2 := range masks[i+1:] {
			if m1.Disjoint(m2) {
				count++
			}
		}
	}
	return count
}

func TestBuildPairSet_Invariants(t *testing.T) {
	idx, ps := buildTestPairs(t, pairFixture, "")

	if want := bruteForceDuos(idx); ps.DuoCount() != want {
		t.Errorf("DuoCount() = %d, want %d", ps.DuoCount(), want)
	}

	seen := 0
	for _, key := range twoLetterKeys() {
		for _, pair := range ps.PairsFor(key) {
			seen++
			if got := pair.Count(); got != 10 {
				t.Errorf("pair %v popcount = %d, want 10", pair, got)
			}
			if got := pair.TwoLowest(); got != key {
				t.Errorf("pair %v indexed under %v, two lowest = %v", pair, key, got)
			}
			reps := ps.Representatives(pair)
			if len(reps) == 0 {
				t.Errorf("pair %v has no representatives", pair)
			}
			for _, rep := range reps {
				other := pair ^ rep
				if !rep.Disjoint(other) {
					t.Errorf("pair %v: rep %v not disjoint from complement %v", pair, rep, other)
				}
				if rep > other {
					t.Errorf("pair %v: rep %v is not the smaller constituent", pair, rep)
				}
				if !idx.Contains(rep) || !idx.Contains(other) {
					t.Errorf("pair %v: constituents %v/%v not both in the word index", pair, rep, other)
				}
			}
		}
	}
	if seen != ps.Count() {
		t.Errorf("index holds %d pairs, table holds %d", seen, ps.Count())
	}
}

func TestBuildPairSet_MultipleDuosPerMask(t *testing.T) {
	// abcde+fghij and abcdf+eghij produce the same 10-letter pair mask.
	_, ps := buildTestPairs(t, []string{"abcde", "fghij", "abcdf", "eghij"}, "")

	pair := mustSet(t, "abcde") | mustSet(t, "fghij")
	reps := ps.Representatives(pair)
	if len(reps) != 2 {
		t.Fatalf("Representatives(%v) = %v, want 2 duos", pair, reps)
	}
	for _, rep := range reps {
		if rep != mustSet(t, "abcde") && rep != mustSet(t, "abcdf") {
			t.Errorf("unexpected representative %v", rep)
		}
	}

	// The pair mask must appear in the index once, not once per duo.
	key := pair.TwoLowest()
	count := 0
	for _, p := range ps.PairsFor(key) {
		if p == pair {
			count++
		}
	}
	if count != 1 {
		t.Errorf("pair %v appears %d times under key %v, want 1", pair, count, key)
	}
}

func TestBuildPairSet_ShardingEquivalence(t *testing.T) {
	tests := []struct {
		name         string
		shardLetters string
	}{
		{"no sharding", ""},
		{"default letters", "etoins"},
		{"single letter", "a"},
		{"letters with no words", "qz"},
		{"non-letter characters", "e-t!"},
	}

	_, want := buildTestPairs(t, pairFixture, "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := buildTestPairs(t, pairFixture, tt.shardLetters)
			if got.Count() != want.Count() || got.DuoCount() != want.DuoCount() {
				t.Fatalf("sharded build: %d pairs / %d duos, want %d / %d",
					got.Count(), got.DuoCount(), want.Count(), want.DuoCount())
			}
			for _, key := range twoLetterKeys() {
				gotPairs := got.PairsFor(key)
				wantPairs := want.PairsFor(key)
				if !slices.Equal(gotPairs, wantPairs) {
					t.Errorf("key %v: pairs %v, want %v", key, gotPairs, wantPairs)
				}
				for _, pair := range gotPairs {
					gotReps := slices.Sorted(slices.Values(got.Representatives(pair)))
					wantReps := slices.Sorted(slices.Values(want.Representatives(pair)))
					if !slices.Equal(gotReps, wantReps) {
						t.Errorf("pair %v: reps %v, want %v", pair, gotReps, wantReps)
					}
				}
			}
		})
	}
}

func TestBuildPairSet_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := BuildWordIndex(pairFixture)
	if _, err := BuildPairSet(ctx, idx, "", 2); err == nil {
		t.Error("BuildPairSet() with cancelled context: wanted error")
	}
}
