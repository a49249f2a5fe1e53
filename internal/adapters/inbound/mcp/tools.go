package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/travislint/travislint/internal/domain"
)

// registerTools registers the travislint MCP tools on the given server.
func registerTools(s *server.MCPServer, d *deps) {
	// 1. travislint_lint_file
	s.AddTool(
		mcplib.NewTool("travislint_lint_file",
			mcplib.WithDescription("Lint a Travis CI configuration file with the Travis lint API and return its reports as JSON"),
			mcplib.WithString("file",
				mcplib.Description("Path to the file, relative to the project root (default: .travis.yml)"),
			),
		),
		handleLintFile(d),
	)

	// 2. travislint_lint_content
	s.AddTool(
		mcplib.NewTool("travislint_lint_content",
			mcplib.WithDescription("Lint inline Travis CI YAML with the Travis lint API and return its reports as JSON"),
			mcplib.WithString("content",
				mcplib.Required(),
				mcplib.Description("YAML content of a .travis.yml file"),
			),
		),
		handleLintContent(d),
	)
}

// lintOutput is the JSON payload returned by the lint tools.
type lintOutput struct {
	Source      string            `json:"source"`
	ReportCount int               `json:"report_count"`
	Lines       []string          `json:"lines"`
	Categories  []domain.Category `json:"categories"`
}

func newLintOutput(source string, result *domain.LintResult) lintOutput {
	return lintOutput{
		Source:      source,
		ReportCount: result.ReportCount(),
		Lines:       result.Lines(),
		Categories:  result.Categories,
	}
}

func handleLintFile(d *deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, _ := request.GetArguments()["file"].(string)

		path := d.defaultPath()
		if file != "" {
			path = file
			if !filepath.IsAbs(path) {
				path = filepath.Join(d.projectPath, path)
			}
		}

		result, err := d.service.LintFile(ctx, path, nil)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(newLintOutput(path, result))
	}
}

func handleLintContent(d *deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := d.service.LintContent(ctx, "content", []byte(content), nil)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(newLintOutput("content", result))
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
