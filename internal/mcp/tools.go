package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/findex/internal/config"
	"github.com/dshills/findex/internal/glob"
	"github.com/dshills/findex/internal/indexer"
	"github.com/dshills/findex/internal/searcher"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
	ErrorCodeInvalidPattern     = -32005 // Wildcard pattern does not compile
	ErrorCodeModelUnavailable   = -32006 // No embedding model loaded
)

// handleIndexPath handles the index_path tool invocation
func (s *Server) handleIndexPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	stats, err := s.indexer.Index(ctx, path, nil)
	if errors.Is(err, indexer.ErrIndexingInProgress) {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":           true,
		"root":              stats.Root,
		"entries_processed": stats.EntriesProcessed,
		"entries_inserted":  stats.EntriesInserted,
		"entries_skipped":   stats.EntriesSkipped,
		"unreadable":        stats.Unreadable,
		"unlistable":        stats.Unlistable,
		"duration_ms":       stats.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleWildcardSearch handles the wildcard_search tool invocation
func (s *Server) handleWildcardSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	pattern, ok := args["pattern"].(string)
	if !ok || pattern == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "pattern parameter is required", map[string]interface{}{
			"param":  "pattern",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 0)
	if limit < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be >= 0", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	entries, err := s.searcher.Wildcard(ctx, pattern, limit)
	var perr *glob.PatternError
	if errors.As(err, &perr) {
		return nil, newMCPError(ErrorCodeInvalidPattern, "invalid pattern", map[string]interface{}{
			"pattern": perr.Pattern,
			"offset":  perr.Offset,
			"reason":  perr.Err.Error(),
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	matches := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, map[string]interface{}{
			"id":         e.ID,
			"name":       e.Name,
			"path":       e.Path,
			"kind":       string(e.Kind),
			"is_dir":     e.IsDir,
			"size_bytes": e.SizeBytes,
		})
	}

	response := map[string]interface{}{
		"pattern": pattern,
		"count":   len(matches),
		"matches": matches,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSemanticSearch handles the semantic_search tool invocation
func (s *Server) handleSemanticSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", s.searcher.TopK())
	if limit < 1 || limit > config.MaxTopK {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", config.MaxTopK), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	resp, err := s.searcher.Search(ctx, searcher.SearchRequest{Query: query, TopK: limit})
	switch {
	case errors.Is(err, searcher.ErrNoEmbedder):
		return nil, newMCPError(ErrorCodeModelUnavailable, "no embedding model loaded", map[string]interface{}{
			"hint": "start the server with --model or set FINDEX_MODEL_PATH",
		})
	case errors.Is(err, searcher.ErrEmptyQuery):
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", nil)
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, map[string]interface{}{
			"rank":       r.Rank,
			"id":         r.ID,
			"name":       r.Name,
			"path":       r.Path,
			"similarity": r.Similarity,
		})
	}

	response := map[string]interface{}{
		"query":          query,
		"query_in_model": !resp.QueryMissing,
		"results":        results,
		"candidates":     resp.Candidates,
		"misses":         resp.Misses,
		"duration_ms":    resp.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := s.storage.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":              status.EntriesCount > 0,
		"indexing_in_progress": s.indexer.InProgress(),
		"statistics": map[string]interface{}{
			"entries_count":     status.EntriesCount,
			"directories_count": status.DirectoriesCount,
			"files_count":       status.FilesCount,
			"total_file_bytes":  status.TotalFileBytes,
			"index_size_mb":     fmt.Sprintf("%.2f", float64(status.IndexSizeBytes)/(1024*1024)),
		},
		"schema_version": status.SchemaVersion,
	}
	if !status.LastIndexedAt.IsZero() {
		response["last_indexed_at"] = status.LastIndexedAt.Format(time.RFC3339)
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is accessible
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	// Directories must be listable
	if info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return ErrPathNotReadable
		}
		_ = f.Close()
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
)

