package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/findex/internal/config"
	"github.com/dshills/findex/internal/searcher"
)

// NewSimilarCommand creates the 'findex similar' command
func NewSimilarCommand(opts *globalOptions) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:     "similar <word>",
		Aliases: []string{"semantic"},
		Short:   "Rank catalogued files by similarity to a word",
		Long: `Look up <word> in the word vector model and print the catalogued files
whose names are closest to it by cosine similarity, best first.

File names are looked up as given, then lowercased, then without their
extension. Files whose name is not in the model are skipped. Directories
are never ranked. A word that is not in the model prints no results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				if topK < 1 || topK > config.MaxTopK {
					return fmt.Errorf("--top must be between 1 and %d, got %d", config.MaxTopK, topK)
				}
				cfg.TopK = topK
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			out := newPrinter(cmd.OutOrStdout(), cfg.NoColor)

			// Load the model before taking the catalog lock
			emb, err := loadEmbedder(cfg)
			if err != nil {
				return err
			}
			defer emb.Close()

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			srch := searcher.New(store, emb, &searcher.Options{Workers: cfg.Workers, TopK: cfg.TopK, Logger: logger})
			resp, err := srch.Search(cmd.Context(), searcher.SearchRequest{Query: args[0]})
			if err != nil {
				return err
			}

			switch {
			case resp.QueryMissing:
				fmt.Fprintf(cmd.OutOrStdout(), "%q is not in the model\n", args[0])
				return nil
			case len(resp.Results) == 0:
				fmt.Fprintf(cmd.OutOrStdout(), "No catalogued file names are in the model\n")
				return nil
			}
			for _, r := range resp.Results {
				out.rankedLine(r)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top", "k", searcher.DefaultTopK, "number of results")
	return cmd
}
