package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/foldersize/foldersize/internal/scanner"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// config collects the flag values of one invocation.
type config struct {
	scan        scanner.Options
	rootSummary string
	outputDir   string
	format      string
	noReport    bool
	logLevel    string
	quiet       bool
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	return c.newCommand().Execute()
}

func (c CLI) newCommand() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "foldersize [flags] [path]",
		Short: "Measure folder sizes and generate sortable reports",
		Long: heredoc.Doc(`
			foldersize measures the disk usage of every folder under a directory
			down to a bounded depth.

			Each reported size is the folder's full recursive byte count, even for
			folders sitting at the depth limit. Unreadable folders are skipped with
			a warning instead of aborting the scan.

			Results are written as a timestamped self-contained HTML report with
			a sortable table, plus a ';'-delimited CSV, and summarized on the
			console.

			Positional Arguments:
			  path                   Directory to scan. Defaults to current directory if not specified.
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.scan.Path = args[0]
			}

			cfg.scan.RootSummary = scanner.RootSummary(cfg.rootSummary)

			return run(cmd.Context(), cfg)
		},
	}

	addFlags(cmd.Flags(), cfg)

	return cmd
}

func addFlags(flags *pflag.FlagSet, cfg *config) {
	flags.IntVarP(&cfg.scan.MaxDepth, "depth", "d", 2, "Maximum depth of folders to report (must be >= 1)")
	flags.StringVar(
		&cfg.rootSummary,
		"root-summary",
		string(scanner.RootSummaryOmit),
		"Record for the entry point itself: omit, files-only or full",
	)
	flags.IntVar(&cfg.scan.Concurrency, "concurrency", 0, "Parallel subtree sizing limit (0=auto, 1=serial)")
	flags.StringVarP(&cfg.outputDir, "out", "o", ".", "Directory for the generated report files")
	flags.StringVarP(&cfg.format, "format", "f", "table", "Console output format: table or json")
	flags.BoolVar(&cfg.noReport, "no-report", false, "Skip generating the HTML/CSV report files")
	flags.StringVar(&cfg.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "Suppress the console summary")

	flags.SortFlags = false
}
