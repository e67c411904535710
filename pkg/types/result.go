package types

import "math"

// RankedResult is a single semantic search hit
type RankedResult struct {
	ID         int64
	Rank       int // Position in result set (1-based)
	Name       string
	Path       string
	Similarity float32
}

// Validate checks if the ranked result is valid
func (r *RankedResult) Validate() error {
	if r.ID == 0 {
		return ErrInvalidEntryID
	}

	if r.Rank < 1 {
		return ErrInvalidRank
	}

	if math.IsNaN(float64(r.Similarity)) || r.Similarity < -1.0001 || r.Similarity > 1.0001 {
		return ErrInvalidSimilarity
	}

	return nil
}
