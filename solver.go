package quintet

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"crosswarped.com/quintet/internal"
)

// DefaultShardLetters is the default work-partitioning letter set for pair
// construction. Common letters spread the word index across many shard
// signatures, which keeps the parallel pair builders evenly loaded.
const DefaultShardLetters = "etoins"

// ErrSourceUnavailable marks a word source that could not be read at all.
// It is fatal and is surfaced before any index building begins.
var ErrSourceUnavailable = errors.New("word source unavailable")

type SolverParams struct {
	// ShardLetters partitions pair construction; it never changes the
	// solution set. Empty means a single shard.
	ShardLetters string

	// CollapseAnagrams emits one word per anagram class (the
	// alphabetically first) instead of the full cross-product.
	CollapseAnagrams bool

	// Workers bounds the parallel pair-build and combine phases.
	// 0 means one worker per CPU.
	Workers int
}

// Stats counts the solver's build and search stages.
type Stats struct {
	WordsAccepted  int
	WordsRejected  int
	AnagramClasses int
	PairMasks      int
	PairDuos       int
	Solutions      int

	IndexDuration   time.Duration
	PairDuration    time.Duration
	CombineDuration time.Duration
}

// Solver finds every combination of five five-letter words whose letters
// cover twenty-five distinct letters of the alphabet.
type Solver struct {
	words  []string
	params SolverParams

	// Do not access these fields directly, use the build method instead.
	index      *internal.WordIndex
	pairs      *internal.PairSet
	remainders internal.RemainderCache

	stats Stats
}

func CreateSolver(words []string, params SolverParams) *Solver {
	return &Solver{
		words:  words,
		params: params,
	}
}

func (s *Solver) workers() int {
	if s.params.Workers > 0 {
		return s.params.Workers
	}
	return runtime.NumCPU()
}

// Build runs the sequential build pipeline: word index, pair inventory,
// remainder cache. It is idempotent; Solutions calls it lazily if needed.
func (s *Solver) Build(ctx context.Context) error {
	if s.pairs != nil {
		return nil
	}

	start := time.Now()
	s.index = internal.BuildWordIndex(s.words)
	s.remainders = internal.BuildRemainderCache(s.index)
	s.stats.WordsAccepted = s.index.Accepted()
	s.stats.WordsRejected = s.index.Rejected()
	s.stats.AnagramClasses = s.index.ClassCount()
	s.stats.IndexDuration = time.Since(start)
	log.Debug().
		Int("accepted", s.stats.WordsAccepted).
		Int("rejected", s.stats.WordsRejected).
		Int("classes", s.stats.AnagramClasses).
		Dur("elapsed", s.stats.IndexDuration).
		Msg("word index built")

	start = time.Now()
	pairs, err := internal.BuildPairSet(ctx, s.index, s.params.ShardLetters, s.workers())
	if err != nil {
		return err
	}
	s.pairs = pairs
	s.stats.PairMasks = pairs.Count()
	s.stats.PairDuos = pairs.DuoCount()
	s.stats.PairDuration = time.Since(start)
	log.Debug().
		Int("pair_masks", s.stats.PairMasks).
		Int("duos", s.stats.PairDuos).
		Dur("elapsed", s.stats.PairDuration).
		Msg("pair inventory built")
	return nil
}

// Stats returns the stage counters gathered so far. The Solutions counter
// is only final once a Solutions iteration has run to completion.
func (s *Solver) Stats() Stats {
	return s.stats
}
