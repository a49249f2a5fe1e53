package application

import (
	"context"

	"github.com/travislint/travislint/internal/domain"
)

// Stage identifies a step of the lint pipeline for progress narration.
type Stage int

const (
	// StageParsing is reported once the file is open, before parsing.
	StageParsing Stage = iota + 1
	// StagePosting is reported before the request is sent.
	StagePosting
	// StageResponse is reported once the linter has answered.
	StageResponse
)

// ProgressFunc receives pipeline stages. detail is the document source.
type ProgressFunc func(stage Stage, detail string)

// LintService orchestrates the lint pipeline:
// read -> parse -> canonicalize -> post -> decode.
type LintService struct {
	loader domain.DocumentLoader
	linter domain.Linter
}

func NewLintService(loader domain.DocumentLoader, linter domain.Linter) *LintService {
	return &LintService{
		loader: loader,
		linter: linter,
	}
}

// LintFile lints the file at path. No request is sent when the file cannot
// be read or parsed.
func (s *LintService) LintFile(ctx context.Context, path string, progress ProgressFunc) (*domain.LintResult, error) {
	data, err := s.loader.Read(path)
	if err != nil {
		return nil, err
	}
	return s.LintContent(ctx, path, data, progress)
}

// LintContent lints in-memory YAML under the given source name.
func (s *LintService) LintContent(ctx context.Context, name string, data []byte, progress ProgressFunc) (*domain.LintResult, error) {
	notify(progress, StageParsing, name)

	doc, err := s.loader.Parse(name, data)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, doc, progress)
}

func (s *LintService) submit(ctx context.Context, doc *domain.Document, progress ProgressFunc) (*domain.LintResult, error) {
	notify(progress, StagePosting, doc.Source)

	result, err := s.linter.Lint(ctx, doc.Canonical)
	if err != nil {
		kind := domain.KindOf(err)
		if kind == domain.NoResultError {
			notify(progress, StageResponse, doc.Source)
		}
		if kind == 0 {
			err = domain.NewNetworkError(err)
		}
		return nil, err
	}

	notify(progress, StageResponse, doc.Source)
	return result, nil
}

func notify(progress ProgressFunc, stage Stage, detail string) {
	if progress != nil {
		progress(stage, detail)
	}
}
