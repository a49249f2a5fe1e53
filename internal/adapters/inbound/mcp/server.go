package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/travislint/travislint/internal/adapters/outbound/cache"
	"github.com/travislint/travislint/internal/adapters/outbound/document"
	"github.com/travislint/travislint/internal/adapters/outbound/gitinfo"
	"github.com/travislint/travislint/internal/adapters/outbound/linter"
	"github.com/travislint/travislint/internal/application"
	"github.com/travislint/travislint/internal/domain"
)

// deps is shared by every tool and resource handler.
type deps struct {
	projectPath string
	cfg         domain.ClientConfig
	loader      *document.YAMLLoader
	service     *application.LintService
	resolver    *application.FileResolver
}

func newDeps(projectPath string, cfg domain.ClientConfig) *deps {
	loader := document.New()
	var lint domain.Linter = linter.New(cfg, nil)
	if cfg.Cache {
		lint = application.NewCachedLinter(lint, cache.New(projectPath), cfg.Endpoint, cfg.CacheTTL, nil)
	}
	return &deps{
		projectPath: projectPath,
		cfg:         cfg,
		loader:      loader,
		service:     application.NewLintService(loader, lint),
		resolver:    application.NewFileResolver(gitinfo.New()),
	}
}

// defaultPath resolves the configured default file against the project.
func (d *deps) defaultPath() string {
	return d.resolver.Resolve(d.projectPath, "", d.cfg.DefaultFile)
}

// NewTravisLintMCPServer creates an MCP server with the lint tools and
// resources registered. Relative file arguments resolve against projectPath.
func NewTravisLintMCPServer(projectPath string, cfg domain.ClientConfig) *server.MCPServer {
	s := server.NewMCPServer(
		"travislint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	d := newDeps(projectPath, cfg)
	registerTools(s, d)
	registerResources(s, d)

	return s
}
