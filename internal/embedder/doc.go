// Package embedder maps file names to word vectors from a pre-trained model.
//
// Models are read from the word2vec/fastText text format:
//
//	2 3
//	cat 0.12 -0.40 0.88
//	dog 0.10 -0.38 0.91
//
// The "<count> <dim>" header is optional. Files ending in .gz are
// decompressed while loading.
//
// # Basic Usage
//
//	emb, err := embedder.New(embedder.Config{
//	    ModelPath: "~/models/cc.en.300.vec",
//	    CacheSize: 10000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	vec, ok := emb.Lookup("Invoice.PDF")
//
// # Name Resolution
//
// New returns a Resolver, which tries these tokens in order and returns the
// first hit:
//
//  1. the name as given ("Invoice.PDF")
//  2. its lowercase form ("invoice.pdf")
//  3. the name without its extension ("Invoice")
//  4. the lowercase stem ("invoice")
//
// Hits and misses are memoised in an LRU cache, so repeated searches over
// the same catalog do not repeat the fallback chain.
//
// # Errors
//
//   - ErrNoModelConfigured: Config.ModelPath is empty
//   - ErrEmptyModel: the file has no vectors
//   - ErrDimensionMismatch: a line's length differs from the model dimension
//   - ErrMalformedLine: a line has no values or a value is not a number
package embedder
