package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"crosswarped.com/quintet"
)

func main() {

	file := flag.String("file", "", "The file to load words from")
	shard := flag.String("shard", quintet.DefaultShardLetters, "Letters used to split pair construction into smaller parallel groups")
	anagrams := flag.Bool("anagrams", true, "Include anagrams in the output; false emits one line per distinct letter split")
	quiet := flag.Bool("quiet", false, "Output shows stats only, not the combinations")
	output := flag.String("output", "", "Save combinations to a CSV file")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = one per CPU)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	timeout := flag.Duration("timeout", 5*time.Minute, "The timeout for the search")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *file == "" {
		fmt.Println("A word file is required: -file path/to/word/file")
		os.Exit(1)
	}

	start := time.Now()

	words, err := loadFromFile(*file)
	if err != nil {
		fmt.Println("Error loading words from file:", err)
		os.Exit(1)
	}
	fmt.Println("Loaded words:", len(words))

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	solver := quintet.CreateSolver(words, quintet.SolverParams{
		ShardLetters:     *shard,
		CollapseAnagrams: !*anagrams,
		Workers:          *workers,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := solver.Build(ctx); err != nil {
		fmt.Println("Error building indexes:", err)
		os.Exit(1)
	}

	var combos [][5]string
	for combo := range solver.Combinations(ctx) {
		combos = append(combos, combo)
	}
	if err := ctx.Err(); err != nil {
		fmt.Println("Context error:", err)
	}
	slices.SortFunc(combos, func(a, b [5]string) int {
		return slices.Compare(a[:], b[:])
	})

	if *output != "" {
		if err := writeCSV(*output, combos); err != nil {
			fmt.Println("Error writing output file:", err)
			os.Exit(1)
		}
	} else if !*quiet {
		for _, combo := range combos {
			fmt.Println(strings.Join(combo[:], " "))
		}
	}

	stats := solver.Stats()
	fmt.Println("--------------------------------")
	fmt.Println("Words accepted:", stats.WordsAccepted, "rejected:", stats.WordsRejected)
	fmt.Println("Anagram classes:", stats.AnagramClasses)
	fmt.Println("Pairs:", stats.PairMasks, "from", stats.PairDuos, "duos")
	fmt.Println("Solutions:", stats.Solutions, "combinations:", len(combos))
	fmt.Println("Index:", stats.IndexDuration, "pairs:", stats.PairDuration, "combine:", stats.CombineDuration)
	fmt.Println("Total elapsed time:", time.Since(start))

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}
}

func loadFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", quintet.ErrSourceUnavailable, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", quintet.ErrSourceUnavailable, err)
	}
	return words, nil
}

func writeCSV(path string, combos [][5]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, combo := range combos {
		if err := w.Write(combo[:]); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
