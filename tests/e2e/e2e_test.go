package e2e_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travislint/travislint/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "travislint-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "travislint")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/travislint")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/travis", name))
	return abs
}

func lintAPI(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.PostFormValue("content") == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/lint"
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "TRAVISLINT_ENDPOINT=", "TRAVISLINT_TIMEOUT=")
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

const warnings = `{"lint":{"warnings":[{"key":["go"],"message":"unsupported version"},{"key":[],"message":"missing dist"}]}}`

// --- Lint Tests ---

func TestE2E_Lint(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 0, code)
	assert.Equal(t, "[X] in go: unsupported version\n[X] missing dist\n", out)
}

func TestE2E_LintClean(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--endpoint", lintAPI(t, `{"lint":{"warnings":[]}}`))
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestE2E_LintVerbose(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "-v", "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Parsing "+fixturePath("go.yml")+"...")
	assert.Contains(t, out, "POSTing to the linter...")
	assert.Contains(t, out, "2 reports (warnings: 2)")
}

func TestE2E_LintJSON(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--json", "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 0, code)

	var result domain.LintResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Categories, 1)
	assert.Equal(t, 2, result.ReportCount())
}

func TestE2E_LintCI(t *testing.T) {
	_, code := run(t, fixturePath("go.yml"), "--ci", "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 1, code, "should exit 1 when the linter reports anything")
}

// --- Failure Tests ---

func TestE2E_MissingFile(t *testing.T) {
	missing := fixturePath("absent.yml")
	out, code := run(t, missing, "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 2, code)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Error opening file: "+missing)
}

func TestE2E_MalformedYAML(t *testing.T) {
	out, code := run(t, fixturePath("malformed.yml"), "--endpoint", lintAPI(t, warnings))
	assert.Equal(t, 3, code)
	assert.True(t, strings.HasPrefix(out, "Generic YAML parse failed: "))
}

func TestE2E_Unreachable(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--endpoint", "http://127.0.0.1:1/lint", "--timeout", "2s")
	assert.Equal(t, 4, code)
	assert.Contains(t, out, "Lint request failed")
}

func TestE2E_NoResult(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--endpoint", lintAPI(t, `{"lint":false}`))
	assert.Equal(t, 6, code)
	assert.Equal(t, "No lint result returned\n", out)
}

func TestE2E_InvalidEndpoint(t *testing.T) {
	out, code := run(t, fixturePath("go.yml"), "--endpoint", "ftp://example.com")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: invalid flags")
}

// --- Version ---

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "travislint")
}
