// Command server is the travel tool server, speaking MCP over stdio.
package main

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	travelTools "github.com/voyagekit/mcp-server-travel-bridge/pkg/tools/travel"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

func main() {
	// stdout carries the MCP stream, so all logging stays on stderr
	log.Info("Starting travel tool server...")

	mcpServer := server.NewMCPServer(
		"Travel Bridge Server",
		"1.0.0",
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	registry := core.NewRegistry()
	clients := travelTools.NewClients(upstream.New())

	if err := travelTools.RegisterTravelTools(registry, clients); err != nil {
		log.Fatal("Failed to register tools", "error", err)
	}

	registry.Attach(mcpServer)
	log.Info("Server started, waiting for requests...", "tools", registry.Names())

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal("Server error", "error", err)
	}
}
