package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	configURI    = "travislint://config"
	canonicalURI = "travislint://canonical"
)

// registerResources registers the travislint MCP resources on the given server.
func registerResources(s *server.MCPServer, d *deps) {
	// 1. travislint://config - effective client configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Client Configuration",
			mcplib.WithResourceDescription("Endpoint, timeout and default file used for lint requests"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(d),
	)

	// 2. travislint://canonical - the exact payload a lint would send
	s.AddResource(
		mcplib.NewResource(
			canonicalURI,
			"Canonical Document",
			mcplib.WithResourceDescription("Canonical YAML of the project's Travis file, as sent to the linter"),
			mcplib.WithMIMEType("application/yaml"),
		),
		handleCanonicalResource(d),
	)
}

func handleConfigResource(d *deps) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(d.cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleCanonicalResource(d *deps) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		doc, err := d.loader.Load(d.defaultPath())
		if err != nil {
			return nil, err
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      canonicalURI,
				MIMEType: "application/yaml",
				Text:     doc.Canonical,
			},
		}, nil
	}
}
