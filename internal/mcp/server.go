package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/findex/internal/indexer"
	"github.com/dshills/findex/internal/searcher"
	"github.com/dshills/findex/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "findex"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	indexer  *indexer.Indexer
	searcher *searcher.Searcher
	logger   *slog.Logger
}

// NewServer creates a new MCP server over an open catalog.
// The caller owns store and closes it after Serve returns.
func NewServer(store storage.Storage, idx *indexer.Indexer, srch *searcher.Searcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		storage:  store,
		indexer:  idx,
		searcher: srch,
		logger:   logger,
	}

	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", "name", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(indexPathTool(), s.handleIndexPath)
	s.mcp.AddTool(wildcardSearchTool(), s.handleWildcardSearch)
	s.mcp.AddTool(semanticSearchTool(s.searcher.TopK()), s.handleSemanticSearch)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
