package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/travislint/travislint/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var opts lintOptions

	cmd := &cobra.Command{
		Use:   "travislint [filename]",
		Short: "Lint a .travis.yml file",
		Long: "travislint sends a Travis CI configuration file to the Travis lint API and prints the diagnostics it returns.\n" +
			"The file defaults to .travis.yml in the current directory, or at the root of the enclosing git repository.\n" +
			"Subcommand names take precedence over file names: to lint a file called \"version\", \"mcp\" or \"cache\", pass it as ./version.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			return runLint(cmd, filename, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output of progress")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the lint result as JSON")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.ci, "ci", false, "CI mode: exit 1 if the linter reports anything")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Log HTTP traffic to stderr")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "Reuse results for unchanged content from .travislint/cache")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Lint API URL (default "+domain.DefaultEndpoint+")")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout, e.g. 30s (default: none)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newCacheCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. Lint failures are already printed to stdout by the
// command; anything else is printed to stderr here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && domain.KindOf(err) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if kind := domain.KindOf(err); kind != 0 {
		return kind.ExitCode()
	}
	return 1
}

// flagOverrides returns the config values set on the command line.
func (o lintOptions) flagOverrides() domain.ClientConfig {
	return domain.ClientConfig{Endpoint: o.endpoint, Timeout: o.timeout, Cache: o.cache}
}

type lintOptions struct {
	verbose    bool
	jsonOutput bool
	noColor    bool
	ci         bool
	debug      bool
	cache      bool
	endpoint   string
	timeout    time.Duration
}
