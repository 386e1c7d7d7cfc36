// Package core defines the tool interface and the dispatch boundary between
// the assistant and the travel tools.
package core

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
)

// Standard errors for consistent error handling across the dispatch boundary.
var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrUpstreamAPI      = errors.New("upstream API failure")
	ErrModelUnavailable = errors.New("model unavailable")
)

// Tool defines the interface for all tools in the system
type Tool interface {
	// Handle returns the underlying MCP tool
	Handle() mcp.Tool

	// ToOpenAITool converts the tool to OpenAI function calling format
	ToOpenAITool() openai.ChatCompletionToolParam

	// Handler processes tool requests and returns responses
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// NewErrorResult creates a standard error result
func NewErrorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// NewTextResult creates a standard text result
func NewTextResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

// GetOpenAITools converts a slice of tools to OpenAI format
func GetOpenAITools(tools []Tool) []openai.ChatCompletionToolParam {
	openaiTools := make([]openai.ChatCompletionToolParam, len(tools))
	for i, tool := range tools {
		openaiTools[i] = tool.ToOpenAITool()
	}
	return openaiTools
}
