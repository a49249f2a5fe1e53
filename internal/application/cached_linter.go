package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/travislint/travislint/internal/domain"
)

// CachedLinter serves repeated lints of identical content from a
// domain.ResultCache. Only successful results are stored.
type CachedLinter struct {
	next     domain.Linter
	cache    domain.ResultCache
	endpoint string
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewCachedLinter(next domain.Linter, cache domain.ResultCache, endpoint string, ttl time.Duration, logger *slog.Logger) *CachedLinter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedLinter{
		next:     next,
		cache:    cache,
		endpoint: endpoint,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (l *CachedLinter) Lint(ctx context.Context, content string) (*domain.LintResult, error) {
	key := domain.CacheKey(l.endpoint, content)

	entry, err := l.cache.Load(key)
	switch {
	case err != nil:
		l.logger.Debug("cache read failed", "key", key, "error", err)
	case entry != nil && entry.Result != nil && !entry.IsExpired(l.now(), l.ttl):
		l.logger.Debug("cache hit", "key", key, "stored_at", entry.StoredAt)
		return entry.Result, nil
	}

	result, err := l.next.Lint(ctx, content)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Save(&domain.CachedResult{
		Key:      key,
		Endpoint: l.endpoint,
		StoredAt: l.now().UTC(),
		Result:   result,
	}); err != nil {
		l.logger.Debug("cache write failed", "key", key, "error", err)
	}
	return result, nil
}
