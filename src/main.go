package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"crosswarped.com/quintet"
)

type SolveRequest struct {
	WordScope        string `json:"wordScope"`
	IncludeObscure   bool   `json:"includeObscure"`
	Shard            string `json:"shard"`
	CollapseAnagrams bool   `json:"collapseAnagrams"`
	MaxCombinations  int    `json:"maxCombinations"`
}

type SolveResponse struct {
	Success      bool       `json:"success"`
	Count        int        `json:"count"`
	Combinations [][]string `json:"combinations"`
	Error        string     `json:"error,omitempty"`

	WordsAccepted int   `json:"wordsAccepted"`
	PairMasks     int   `json:"pairMasks"`
	IndexMillis   int64 `json:"indexMillis"`
	PairMillis    int64 `json:"pairMillis"`
	CombineMillis int64 `json:"combineMillis"`
}

func getWords(ctx context.Context, scope string, includeObscure bool) ([]string, error) {
	client, err := bigquery.NewClient(ctx, "quintet-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT word FROM `quintet-x.WordLists.five_letter` WHERE scope = %q", scope)
	if !includeObscure {
		query += " AND obscure = false"
	}
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

func execute(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	var resp SolveResponse

	if req.WordScope == "" {
		return resp, fmt.Errorf("wordScope must not be empty")
	}
	if req.MaxCombinations < 0 {
		return resp, fmt.Errorf("maxCombinations must not be negative")
	}
	shard := req.Shard
	if shard == "" {
		shard = quintet.DefaultShardLetters
	}

	words, err := getWords(ctx, req.WordScope, req.IncludeObscure)
	if err != nil {
		return resp, fmt.Errorf("%w: %v", quintet.ErrSourceUnavailable, err)
	}
	log.Info().Int("words", len(words)).Str("scope", req.WordScope).Msg("loaded word list")

	solver := quintet.CreateSolver(words, quintet.SolverParams{
		ShardLetters:     shard,
		CollapseAnagrams: req.CollapseAnagrams,
	})

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := solver.Build(ctx); err != nil {
		return resp, fmt.Errorf("solver.Build: %w", err)
	}

	for combo := range solver.Combinations(ctx) {
		resp.Combinations = append(resp.Combinations, combo[:])
		if req.MaxCombinations > 0 && len(resp.Combinations) >= req.MaxCombinations {
			break
		}
	}

	stats := solver.Stats()
	resp.Count = len(resp.Combinations)
	resp.WordsAccepted = stats.WordsAccepted
	resp.PairMasks = stats.PairMasks
	resp.IndexMillis = stats.IndexDuration.Milliseconds()
	resp.PairMillis = stats.PairDuration.Milliseconds()
	resp.CombineMillis = stats.CombineDuration.Milliseconds()
	return resp, ctx.Err()
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("error parsing JSON body")
		w.WriteHeader(http.StatusBadRequest)
		response := SolveResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	response, err := execute(r.Context(), req)
	response.Success = err == nil
	if err != nil {
		response.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("error marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve", solve)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatal().Err(err).Msg("funcframework.StartHostPort")
	}
}
