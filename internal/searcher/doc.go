// Package searcher answers queries against the catalog.
//
// # Wildcard Search
//
// Wildcard compiles a shell-style pattern with the glob package and returns
// the entries whose name matches it:
//
//	s := searcher.New(store, nil, nil)
//	entries, err := s.Wildcard(ctx, "*.{jpg,png}", 0)
//
// An invalid pattern fails with *glob.PatternError before any row is read.
//
// # Semantic Search
//
// Rank embeds the query and every catalogued file name, then orders files by
// cosine similarity:
//
//	s := searcher.New(store, emb, &searcher.Options{Workers: 4})
//	results, err := s.Rank(ctx, "cat", searcher.DefaultTopK)
//	for _, r := range results {
//	    fmt.Printf("%d: %s %s %f\n", r.ID, r.Name, r.Path, r.Similarity)
//	}
//
// Directories are never ranked. Files whose name has no vector, whose vector
// has a different dimension, or whose similarity is NaN (a zero vector on
// either side) are skipped and counted in SearchResponse. Ties keep catalog
// order, so repeated searches over the same catalog return the same list.
//
// A query with no vector in the model returns no results and sets
// SearchResponse.QueryMissing; every candidate is counted as a miss.
//
// # Concurrency
//
// Candidates are read from the store first, then scored by up to
// Options.Workers goroutines. Each candidate's score lands in its own slot,
// so the result does not depend on the worker count.
package searcher
