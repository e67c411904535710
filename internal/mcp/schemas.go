package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/findex/internal/config"
)

// indexPathTool returns the tool definition for index_path
func indexPathTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_path",
		Description: "Catalog a directory tree (names, paths, kinds and sizes) so it can be searched",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the directory (or file) to catalog",
				},
			},
			Required: []string{"path"},
		},
	}
}

// wildcardSearchTool returns the tool definition for wildcard_search
func wildcardSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "wildcard_search",
		Description: "Find catalogued entries whose name matches a shell-style pattern (*, ?, [..], {a,b})",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pattern": map[string]interface{}{
					"type":        "string",
					"description": "Wildcard pattern, e.g. '*.{jpg,png}'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return (0 = all)",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"pattern"},
		},
	}
}

// semanticSearchTool returns the tool definition for semantic_search
func semanticSearchTool(defaultLimit int) mcp.Tool {
	return mcp.Tool{
		Name:        "semantic_search",
		Description: "Rank catalogued files by word-vector similarity between their name and a query word",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Query word; a word missing from the model returns no results",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Maximum number of results to return (1-%d)", config.MaxTopK),
					"default":     defaultLimit,
					"minimum":     1,
					"maximum":     config.MaxTopK,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report catalog statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
