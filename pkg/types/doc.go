// Package types provides shared type definitions for findex.
//
// Entry is one row of the catalog: a file or directory discovered by the
// scanner and persisted by the storage layer. Directories carry the
// recursive size of every regular file beneath them:
//
//	entry := types.Entry{
//	    Name:      "report.pdf",
//	    Path:      "/home/me/docs/report.pdf",
//	    Kind:      types.KindFor("report.pdf", false), // "pdf"
//	    SizeBytes: 48213,
//	}
//
// RankedResult is produced by semantic search and never persisted:
//
//	result := types.RankedResult{
//	    ID:         42,
//	    Rank:       1,
//	    Name:       "receipt.pdf",
//	    Path:       "/home/me/docs/receipt.pdf",
//	    Similarity: 0.83,
//	}
package types
