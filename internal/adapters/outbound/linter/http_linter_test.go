package linter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travislint/travislint/internal/adapters/outbound/linter"
	"github.com/travislint/travislint/internal/domain"
)

const sampleResponse = `{
  "lint": {
    "warnings": [
      {"key": ["deploy", "provider"], "message": "unknown provider"},
      {"key": [], "message": "missing language, defaulting to ruby"}
    ],
    "errors": [
      {"key": ["matrix", "include", 0], "message": {"expected": "map"}}
    ]
  }
}`

type captured struct {
	method      string
	contentType string
	userAgent   string
	content     string
}

func newServer(t *testing.T, status int, body string, seen *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen.method = r.Method
			seen.contentType = r.Header.Get("Content-Type")
			seen.userAgent = r.Header.Get("User-Agent")
			assert.NoError(t, r.ParseForm())
			seen.content = r.PostFormValue("content")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPLinter_PostsFormContent(t *testing.T) {
	var seen captured
	srv := newServer(t, http.StatusOK, sampleResponse, &seen)

	l := linter.New(domain.ClientConfig{Endpoint: srv.URL, UserAgent: "travislint/test"}, nil)
	_, err := l.Lint(context.Background(), "language: go\nscript: make & make test\n")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "application/x-www-form-urlencoded", seen.contentType)
	assert.Equal(t, "travislint/test", seen.userAgent)
	assert.Equal(t, "language: go\nscript: make & make test\n", seen.content)
}

func TestHTTPLinter_DecodesInResponseOrder(t *testing.T) {
	srv := newServer(t, http.StatusOK, sampleResponse, nil)

	result, err := linter.New(domain.ClientConfig{Endpoint: srv.URL}, nil).Lint(context.Background(), "x: 1\n")
	require.NoError(t, err)

	require.Len(t, result.Categories, 2)
	assert.Equal(t, "warnings", result.Categories[0].Name)
	assert.Equal(t, "errors", result.Categories[1].Name)
	assert.Equal(t, []string{
		"[X] in deploy.provider: unknown provider",
		"[X] missing language, defaulting to ruby",
		`[X] in matrix.include.0: {"expected":"map"}`,
	}, result.Lines())
}

func TestHTTPLinter_HTTPErrorIsNetworkError(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable, "down for maintenance", nil)

	_, err := linter.New(domain.ClientConfig{Endpoint: srv.URL}, nil).Lint(context.Background(), "x: 1\n")
	require.Error(t, err)
	assert.Equal(t, domain.NetworkError, domain.KindOf(err))
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "down for maintenance")
}

func TestHTTPLinter_HTTPErrorBodyStaysOnOneLine(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "<html>\n  <body>\n    bad gateway\n  </body>\n</html>\n", nil)

	_, err := linter.New(domain.ClientConfig{Endpoint: srv.URL}, nil).Lint(context.Background(), "x: 1\n")
	require.Error(t, err)
	assert.Equal(t, domain.NetworkError, domain.KindOf(err))
	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "<html> <body> bad gateway </body> </html>")
}

func TestHTTPLinter_UnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := linter.New(domain.ClientConfig{Endpoint: endpoint}, nil).Lint(context.Background(), "x: 1\n")
	require.Error(t, err)
	assert.Equal(t, domain.NetworkError, domain.KindOf(err))
}

func TestHTTPLinter_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	cfg := domain.ClientConfig{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}
	_, err := linter.New(cfg, nil).Lint(context.Background(), "x: 1\n")
	require.Error(t, err)
	assert.Equal(t, domain.NetworkError, domain.KindOf(err))
}

func TestDecodeResponse_NoResult(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"lint": null}`,
		`{"lint": {}}`,
		`{"lint": []}`,
		`{"lint": false}`,
		`{"lint": ""}`,
		`{"lint": { }}`,
		`{"lint": 0}`,
		`{"lint": 0.0}`,
		`{"lint": -0}`,
		`{"lint": 0e10}`,
	}
	for _, body := range bodies {
		_, err := linter.DecodeResponse([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, domain.NoResultError, domain.KindOf(err), body)
		assert.Equal(t, "No lint result returned", err.Error())
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	for _, body := range []string{`<html>`, `{"lint": {"warnings": "nope"}}`, `{"lint": [1]}`} {
		_, err := linter.DecodeResponse([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, domain.DecodeError, domain.KindOf(err), body)
	}
}

func TestDecodeResponse_NonObjectLintNamesItsType(t *testing.T) {
	tests := map[string]string{
		`{"lint": true}`:       "bool",
		`{"lint": 1.5}`:        "float64",
		`{"lint": "warnings"}`: "string",
		`{"lint": ["x"]}`:      "[]interface {}",
	}
	for body, typ := range tests {
		_, err := linter.DecodeResponse([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, domain.DecodeError, domain.KindOf(err), body)
		assert.Contains(t, err.Error(), "lint field is "+typ+", want object", body)
		assert.NotContains(t, err.Error(), "closing", body)
	}
}

func TestDecodeResponse_EmptyCategoryKept(t *testing.T) {
	result, err := linter.DecodeResponse([]byte(`{"lint": {"warnings": []}}`))
	require.NoError(t, err)
	require.Len(t, result.Categories, 1)
	assert.Zero(t, result.ReportCount())
}

func TestNew_DefaultsEndpoint(t *testing.T) {
	l := linter.New(domain.ClientConfig{}, nil)
	assert.Equal(t, domain.DefaultEndpoint, l.Endpoint())
}
