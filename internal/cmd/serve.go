package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/findex/internal/embedder"
	"github.com/dshills/findex/internal/indexer"
	"github.com/dshills/findex/internal/mcp"
	"github.com/dshills/findex/internal/searcher"
)

// NewServeCommand creates the 'findex serve' command
func NewServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Serve the catalog over the Model Context Protocol on stdin/stdout.

Tools: index_path, wildcard_search, semantic_search, get_status.
semantic_search needs a model (--model or FINDEX_MODEL_PATH); without one
the other tools still work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			var emb embedder.Embedder
			loaded, err := loadEmbedder(cfg)
			switch {
			case errors.Is(err, embedder.ErrNoModelConfigured):
				logger.Warn("no model configured, semantic_search is disabled")
			case err != nil:
				return err
			default:
				emb = loaded
				defer emb.Close()
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			idx := indexer.New(store, logger)
			srch := searcher.New(store, emb, &searcher.Options{Workers: cfg.Workers, TopK: cfg.TopK, Logger: logger})
			return mcp.NewServer(store, idx, srch, logger).Serve(cmd.Context())
		},
	}
}
