// Package mcp implements the Model Context Protocol (MCP) server for findex.
//
// The MCP server exposes four tools:
//   - index_path: Catalog a directory tree
//   - wildcard_search: Match entry names against a shell-style pattern
//   - semantic_search: Rank files by word-vector similarity to a query word
//   - get_status: Report catalog statistics
//
// # Basic Usage
//
// The server is started by the serve command and speaks JSON-RPC 2.0 on
// stdin/stdout:
//
//	findex serve --model ~/models/cc.en.300.vec.gz
//
// Logs go to stderr; stdout is reserved for the protocol.
//
// # Tool: index_path
//
//	Request:
//	{
//	  "name": "index_path",
//	  "arguments": {"path": "/home/me/Pictures"}
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "root": "/home/me/Pictures",
//	  "entries_processed": 1204,
//	  "entries_inserted": 1204,
//	  "entries_skipped": 0,
//	  "unreadable": 0,
//	  "duration_ms": 412
//	}
//
// # Tool: wildcard_search
//
//	Request:
//	{
//	  "name": "wildcard_search",
//	  "arguments": {"pattern": "*.{jpg,png}", "limit": 20}
//	}
//
// # Tool: semantic_search
//
//	Request:
//	{
//	  "name": "semantic_search",
//	  "arguments": {"query": "cat", "limit": 5}
//	}
//
//	Response:
//	{
//	  "query": "cat",
//	  "results": [
//	    {"rank": 1, "id": 17, "name": "cat.png", "path": "/home/me/Pictures/cat.png", "similarity": 1}
//	  ],
//	  "candidates": 1100,
//	  "misses": 312,
//	  "duration_ms": 9
//	}
//
// # Error Handling
//
// Handlers return *MCPError values:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, filesystem, etc.)
//   - -32002: Indexing in progress
//   - -32004: Empty query
//   - -32005: Invalid wildcard pattern (data carries the offset)
//   - -32006: No embedding model loaded
//   - -32007: Query word not in the model
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "findex": {
//	      "command": "/usr/local/bin/findex",
//	      "args": ["serve"],
//	      "env": {
//	        "FINDEX_MODEL_PATH": "/models/cc.en.300.vec.gz"
//	      }
//	    }
//	  }
//	}
package mcp
