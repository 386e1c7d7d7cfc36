// Package config provides centralized configuration management for the
// travel bridge binaries.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds the complete configuration for the application
type Config struct {
	// LLM provider selection: "openai" or "anthropic"
	Provider string

	// OpenAI configuration
	OpenAI struct {
		APIKey string
		Model  string
	}

	// Anthropic configuration
	Anthropic struct {
		APIKey string
		Model  string
	}

	// Assistant HTTP API configuration
	API struct {
		Addr string
	}

	// Tool server configuration (the stdio child process the client spawns)
	ToolServer struct {
		Command string
	}
}

var (
	once   sync.Once
	config *Config
)

// Load initializes and loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		v := viper.New()

		// Set default values
		v.SetDefault("provider", "openai")
		v.SetDefault("openai.model", "gpt-4o-mini")
		v.SetDefault("api.addr", ":8000")
		v.SetDefault("toolserver.command", "travel-server")

		// Load from environment variables
		v.AutomaticEnv()

		config = &Config{}

		config.Provider = strings.ToLower(os.Getenv("LLM_PROVIDER"))
		if config.Provider == "" {
			config.Provider = v.GetString("provider")
		}

		// OpenAI
		config.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		config.OpenAI.Model = os.Getenv("OPENAI_MODEL")
		if config.OpenAI.Model == "" {
			config.OpenAI.Model = v.GetString("openai.model")
		}

		// Anthropic
		config.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		config.Anthropic.Model = os.Getenv("ANTHROPIC_MODEL")

		// Assistant API
		config.API.Addr = os.Getenv("API_ADDR")
		if config.API.Addr == "" {
			config.API.Addr = v.GetString("api.addr")
		}

		// Tool server
		config.ToolServer.Command = os.Getenv("TOOL_SERVER_COMMAND")
		if config.ToolServer.Command == "" {
			config.ToolServer.Command = v.GetString("toolserver.command")
		}
	})

	return config
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	var errors []string

	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			errors = append(errors, "OpenAI API key is required for the assistant")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			errors = append(errors, "Anthropic API key is required for the assistant")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown provider %q (expected openai or anthropic)", c.Provider))
	}

	if c.ToolServer.Command == "" {
		errors = append(errors, "tool server command must be configured")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
