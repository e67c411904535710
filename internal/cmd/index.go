package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dshills/findex/internal/indexer"
	"github.com/dshills/findex/pkg/types"
)

// NewIndexCommand creates the 'findex index' command
func NewIndexCommand(opts *globalOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "index <root>",
		Aliases: []string{"init"},
		Short:   "Catalog a directory tree",
		Long: `Walk <root> and record every file and directory in the catalog with
its name, full path, kind (extension, "directory" or "file") and size.
Directory sizes are the recursive total of the regular files beneath them.

Paths already in the catalog are left unchanged, so indexing the same
root again is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)
			out := newPrinter(cmd.OutOrStdout(), cfg.NoColor)

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			idxOpts := &indexer.Options{}
			if !quiet {
				idxOpts.OnEntry = func(e types.Entry, inserted bool) {
					out.entryLine(e)
				}
			}

			stats, err := indexer.New(store, logger).Index(cmd.Context(), args[0], idxOpts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s entries under %s (%s new, %s already catalogued, %s unreadable) in %s\n",
				humanize.Comma(int64(stats.EntriesProcessed)),
				stats.Root,
				humanize.Comma(int64(stats.EntriesInserted)),
				humanize.Comma(int64(stats.EntriesSkipped)),
				humanize.Comma(int64(stats.Unreadable)),
				stats.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")
	return cmd
}
