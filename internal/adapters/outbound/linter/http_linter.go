// Package linter posts canonical Travis configuration to the remote lint
// API and decodes its response.
package linter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/travislint/travislint/internal/domain"
)

// contentField is the form field carrying the document.
const contentField = "content"

// maxBodySize caps how much of a response is read.
const maxBodySize = 10 << 20

// HTTPLinter implements domain.Linter against the Travis lint API.
type HTTPLinter struct {
	endpoint  string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// New creates an HTTPLinter from cfg. A nil logger discards output.
func New(cfg domain.ClientConfig, logger *slog.Logger) *HTTPLinter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	return &HTTPLinter{
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// Endpoint returns the URL requests are posted to.
func (l *HTTPLinter) Endpoint() string { return l.endpoint }

// Lint posts content as a form and decodes the lint payload.
func (l *HTTPLinter) Lint(ctx context.Context, content string) (*domain.LintResult, error) {
	form := url.Values{}
	form.Set(contentField, content)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	l.logger.Debug("posting to linter", "endpoint", l.endpoint, "bytes", len(content))

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("reading response: %w", err))
	}

	l.logger.Debug("linter responded", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= 400 {
		return nil, domain.NewNetworkError(fmt.Errorf("linter returned %s: %s", resp.Status, snippet(body)))
	}

	return DecodeResponse(body)
}

// rawReport mirrors one report entry. Both fields are decoded leniently:
// key elements may be any scalar, message may be any JSON value.
type rawReport struct {
	Key     []any           `json:"key"`
	Message json.RawMessage `json:"message"`
}

// DecodeResponse parses a lint API response body. Categories keep the
// order of the keys in the "lint" object.
func DecodeResponse(body []byte) (*domain.LintResult, error) {
	var envelope struct {
		Lint json.RawMessage `json:"lint"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.NewDecodeError(err)
	}
	if err := checkLintField(envelope.Lint); err != nil {
		return nil, err
	}

	categories := orderedmap.New[string, []rawReport]()
	if err := json.Unmarshal(envelope.Lint, categories); err != nil {
		return nil, domain.NewDecodeError(fmt.Errorf("lint field: %w", err))
	}

	result := &domain.LintResult{Categories: make([]domain.Category, 0, categories.Len())}
	for pair := categories.Oldest(); pair != nil; pair = pair.Next() {
		cat := domain.Category{Name: pair.Key, Reports: make([]domain.Report, 0, len(pair.Value))}
		for _, raw := range pair.Value {
			cat.Reports = append(cat.Reports, toReport(raw))
		}
		result.Categories = append(result.Categories, cat)
	}
	return result, nil
}

func toReport(raw rawReport) domain.Report {
	r := domain.Report{Message: messageText(raw.Message)}
	for _, k := range raw.Key {
		r.Key = append(r.Key, fmt.Sprint(k))
	}
	return r
}

// messageText returns string messages verbatim and any other JSON value
// as its compact encoding.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// checkLintField returns NoResultError for an absent or falsy lint value
// and DecodeError for anything that is not a JSON object.
func checkLintField(raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.NewNoResultError()
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.NewDecodeError(fmt.Errorf("lint field: %w", err))
	}

	switch t := v.(type) {
	case nil:
		return domain.NewNoResultError()
	case bool:
		if !t {
			return domain.NewNoResultError()
		}
	case float64:
		if t == 0 {
			return domain.NewNoResultError()
		}
	case string:
		if t == "" {
			return domain.NewNoResultError()
		}
	case []any:
		if len(t) == 0 {
			return domain.NewNoResultError()
		}
	case map[string]any:
		if len(t) == 0 {
			return domain.NewNoResultError()
		}
		return nil
	}
	return domain.NewDecodeError(fmt.Errorf("lint field is %T, want object", v))
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
