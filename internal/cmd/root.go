package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/findex/internal/storage"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for findex
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "findex",
		Short: "Catalog a filesystem and search it by wildcard or meaning",
		Long: `findex records every file and directory under a root in a local
SQLite catalog, with recursive directory sizes.

The catalog can then be searched by shell-style wildcard patterns
(*, ?, [...], {a,b}) or ranked by word-vector similarity between a
query word and each file name.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error itself
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate(fmt.Sprintf("findex %s (sqlite driver %q, %s build)\n", Version, storage.DriverName, storage.BuildMode))

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.findex/config.yaml)")
	flags.StringVar(&opts.dbPath, "db", "", "catalog database path (default ~/.findex/findex.db)")
	flags.StringVar(&opts.modelPath, "model", "", "word vector model (.vec or .vec.gz)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewSimilarCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}
