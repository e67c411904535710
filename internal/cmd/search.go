package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/findex/internal/searcher"
)

// NewSearchCommand creates the 'findex search' command
func NewSearchCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Find catalogued entries by wildcard pattern",
		Long: `Print every catalogued entry whose name matches <pattern>.

Pattern syntax:
  *        any run of characters except '/'
  **       any run of characters including '/'
  ?        one character except '/'
  [abc]    one character from the class ([!abc] or [^abc] negates)
  {a,b}    either alternative

Quote the pattern so the shell does not expand it:
  findex search '*.{jpg,png}'`,
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

			entries, err := searcher.New(store, nil, &searcher.Options{Logger: logger}).
				Wildcard(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries match %q\n", args[0])
				return nil
			}
			for _, e := range entries {
				out.matchLine(e)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of matches (0 = all)")
	return cmd
}
