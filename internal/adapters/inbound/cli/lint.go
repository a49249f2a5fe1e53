package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/travislint/travislint/internal/adapters/outbound/cache"
	"github.com/travislint/travislint/internal/adapters/outbound/config"
	"github.com/travislint/travislint/internal/adapters/outbound/document"
	"github.com/travislint/travislint/internal/adapters/outbound/gitinfo"
	"github.com/travislint/travislint/internal/adapters/outbound/linter"
	"github.com/travislint/travislint/internal/adapters/outbound/tui"
	"github.com/travislint/travislint/internal/application"
	"github.com/travislint/travislint/internal/domain"
)

func runLint(cmd *cobra.Command, filename string, opts lintOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := loadClientConfig(".", opts)
	if err != nil {
		return err
	}

	// Narration must not corrupt JSON on stdout.
	narration := out
	if opts.jsonOutput {
		narration = cmd.ErrOrStderr()
	}
	render := tui.NewRenderer(out, opts.noColor)
	narrate := tui.NewRenderer(narration, opts.noColor)

	resolver := application.NewFileResolver(gitinfo.New())
	path := resolver.Resolve(".", filename, cfg.DefaultFile)

	var progress application.ProgressFunc
	if opts.verbose {
		progress = func(stage application.Stage, detail string) {
			switch stage {
			case application.StageParsing:
				fmt.Fprint(narration, narrate.RequestHeader(detail, resolver.Revision(detail)))
			case application.StagePosting:
				fmt.Fprint(narration, narrate.PostingLine())
			case application.StageResponse:
				fmt.Fprint(narration, narrate.ResponseHeader())
			}
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	var lint domain.Linter = linter.New(cfg, logger)
	if cfg.Cache {
		lint = application.NewCachedLinter(lint, cache.New("."), cfg.Endpoint, cfg.CacheTTL, logger)
	}
	svc := application.NewLintService(document.New(), lint)

	result, err := svc.LintFile(cmd.Context(), path, progress)
	if err != nil {
		if opts.jsonOutput {
			_ = renderErrorJSON(out, err)
		} else {
			fmt.Fprintln(out, render.Error(err))
		}
		return err
	}

	if opts.jsonOutput {
		if err := renderLintJSON(out, result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, render.Reports(result))
	}

	if opts.verbose {
		fmt.Fprint(narration, narrate.Summary(result))
	}

	if opts.ci && result.ReportCount() > 0 {
		return fmt.Errorf("linter returned %d report(s)", result.ReportCount())
	}
	return nil
}

// loadClientConfig layers command-line flags over .travislint.yaml and the
// environment.
func loadClientConfig(dir string, opts lintOptions) (domain.ClientConfig, error) {
	cfg, err := config.New().Load(dir)
	if err != nil {
		return domain.ClientConfig{}, err
	}

	cfg = cfg.Merge(opts.flagOverrides())
	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.UserAgent == domain.DefaultUserAgent {
		cfg.UserAgent = "travislint/" + version
	}
	return cfg, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func renderLintJSON(w io.Writer, result *domain.LintResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderErrorJSON(w io.Writer, err error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}{
		Error: err.Error(),
		Kind:  domain.KindOf(err).String(),
	})
}
