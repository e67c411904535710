package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the 'findex status' command
func NewStatusCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), cfg.NoColor)

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			status, err := store.GetStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("get status: %w", err)
			}

			dbPath, err := cfg.ResolvedDBPath()
			if err != nil {
				return err
			}

			lastIndexed := "never"
			if !status.LastIndexedAt.IsZero() {
				lastIndexed = humanize.Time(status.LastIndexedAt)
			}

			out.field("Catalog", dbPath)
			out.field("Entries", fmt.Sprintf("%s (%s directories, %s files)",
				humanize.Comma(int64(status.EntriesCount)),
				humanize.Comma(int64(status.DirectoriesCount)),
				humanize.Comma(int64(status.FilesCount))))
			out.field("Total size", humanize.Bytes(status.TotalFileBytes))
			out.field("Index size", humanize.Bytes(uint64(status.IndexSizeBytes)))
			out.field("Schema version", status.SchemaVersion)
			out.field("Last indexed", lastIndexed)
			return nil
		},
	}
}
