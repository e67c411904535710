package searcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/findex/internal/embedder"
	"github.com/dshills/findex/internal/glob"
	"github.com/dshills/findex/internal/storage"
	"github.com/dshills/findex/internal/vector"
	"github.com/dshills/findex/pkg/types"
)

// DefaultTopK is the number of results returned when no limit is given
const DefaultTopK = 5

// Common errors
var (
	ErrEmptyQuery = errors.New("query cannot be empty")
	ErrNoEmbedder = errors.New("embedder not initialized")
)

// Options configures a Searcher
type Options struct {
	Workers int          // Concurrent scorers (default: 1)
	TopK    int          // Result count when a request gives none (default: DefaultTopK)
	Logger  *slog.Logger // nil discards output
}

// SearchRequest contains parameters for a semantic search
type SearchRequest struct {
	Query string
	TopK  int // <= 0 means the searcher's default
}

// SearchResponse contains ranked results and scan counters
type SearchResponse struct {
	Results    []types.RankedResult
	Candidates int // Non-directory entries considered
	Misses     int // Candidates whose name has no vector
	Mismatched int // Candidates whose vector length differs from the query
	Degenerate int // Candidates with an undefined (NaN) similarity
	// QueryMissing is set when the query itself has no vector. Every
	// candidate then counts as a miss and Results is empty.
	QueryMissing bool
	Duration   time.Duration
}

// Searcher runs wildcard and semantic queries over the catalog
type Searcher struct {
	storage  storage.Storage
	embedder embedder.Embedder
	workers  int
	topK     int
	logger   *slog.Logger
}

// New creates a Searcher. emb may be nil when only wildcard search is needed.
func New(store storage.Storage, emb embedder.Embedder, opts *Options) *Searcher {
	if opts == nil {
		opts = &Options{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Searcher{
		storage:  store,
		embedder: emb,
		workers:  workers,
		topK:     topK,
		logger:   logger,
	}
}

// Wildcard returns catalogued entries whose name matches pattern, in
// catalog order. limit <= 0 returns every match. An invalid pattern is
// reported before the catalog is read.
func (s *Searcher) Wildcard(ctx context.Context, pattern string, limit int) ([]types.Entry, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	var matches []types.Entry
	for entry, err := range s.storage.AllEntries(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !matcher.Match(entry.Name) {
			continue
		}
		matches = append(matches, entry)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}

	s.logger.Debug("wildcard search", "pattern", pattern, "regexp", matcher.Regexp(), "matches", len(matches))
	return matches, nil
}

// TopK returns the result count used when a request does not set one
func (s *Searcher) TopK() int {
	return s.topK
}

// Rank returns up to topK files most similar to query, best first.
// topK <= 0 means the searcher's default.
func (s *Searcher) Rank(ctx context.Context, query string, topK int) ([]types.RankedResult, error) {
	resp, err := s.Search(ctx, SearchRequest{Query: query, TopK: topK})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// slotState records what happened to one candidate
type slotState int

const (
	slotScored slotState = iota
	slotMiss
	slotMismatch
	slotDegenerate
)

type slot struct {
	similarity float32
	state      slotState
}

// Search ranks every non-directory entry by cosine similarity between its
// name's vector and the query's vector. Names without a vector, vectors of a
// different length and NaN similarities are left out. Equal similarities
// keep catalog order. A query with no vector yields no results, not an error.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	startTime := time.Now()

	if s.embedder == nil {
		return nil, ErrNoEmbedder
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}

	queryVec, queryFound := s.embedder.Lookup(query)

	// Materialise first: the store has one connection and scoring must not
	// hold it open.
	var candidates []types.Entry
	for entry, err := range s.storage.NonDirectoryEntries(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, entry)
	}

	if !queryFound {
		s.logger.Warn("query has no vector in the model", "query", query, "candidates", len(candidates))
		return &SearchResponse{
			Results:      []types.RankedResult{},
			Candidates:   len(candidates),
			Misses:       len(candidates),
			QueryMissing: true,
			Duration:     time.Since(startTime),
		}, nil
	}

	slots := make([]slot, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = s.score(queryVec, candidates[i].Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &SearchResponse{Candidates: len(candidates)}
	type scored struct {
		entry      types.Entry
		similarity float32
	}
	ranked := make([]scored, 0, len(candidates))
	for i, sl := range slots {
		switch sl.state {
		case slotScored:
			ranked = append(ranked, scored{entry: candidates[i], similarity: sl.similarity})
		case slotMiss:
			resp.Misses++
		case slotMismatch:
			resp.Mismatched++
		case slotDegenerate:
			resp.Degenerate++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	resp.Results = make([]types.RankedResult, len(ranked))
	for i, r := range ranked {
		resp.Results[i] = types.RankedResult{
			ID:         r.entry.ID,
			Rank:       i + 1,
			Name:       r.entry.Name,
			Path:       r.entry.Path,
			Similarity: r.similarity,
		}
		if err := resp.Results[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid result for %s: %w", r.entry.Path, err)
		}
	}
	resp.Duration = time.Since(startTime)

	s.logger.Debug("semantic search",
		"query", query,
		"candidates", resp.Candidates,
		"misses", resp.Misses,
		"mismatched", resp.Mismatched,
		"degenerate", resp.Degenerate,
		"results", len(resp.Results),
		"duration", resp.Duration)

	return resp, nil
}

// score compares one candidate name against the query vector
func (s *Searcher) score(queryVec []float32, name string) slot {
	vec, ok := s.embedder.Lookup(name)
	if !ok {
		return slot{state: slotMiss}
	}
	sim, err := vector.Cosine(queryVec, vec)
	if err != nil {
		return slot{state: slotMismatch}
	}
	if !vector.IsComparable(sim) {
		return slot{state: slotDegenerate}
	}
	return slot{similarity: sim, state: slotScored}
}
