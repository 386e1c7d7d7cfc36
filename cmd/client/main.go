// Command client is the assistant HTTP API. It spawns the travel tool server
// over stdio and lets a language model drive its tools.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/api"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/assistant"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/assistant/provider"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/config"
)

func main() {
	log.Info("Starting travel assistant client...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Warn("Configuration warning", "error", err)
	}

	factory := providerFactory(cfg)
	session := assistant.NewSession(cfg.ToolServer.Command)
	svc := assistant.New(session, factory)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(svc, cfg.API.Addr)
	if err := server.Start(ctx); err != nil {
		log.Fatal("Server error", "error", err)
	}

	if err := svc.Disconnect(); err != nil {
		log.Warn("Failed to close tool session", "error", err)
	}

	log.Info("Shutdown complete")
}

// providerFactory returns a constructor for fresh conversations against the
// configured LLM provider.
func providerFactory(cfg *config.Config) assistant.ProviderFactory {
	if cfg.Provider == "anthropic" {
		return func() provider.ToolCallProvider {
			return provider.NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		}
	}

	return func() provider.ToolCallProvider {
		return provider.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
}
