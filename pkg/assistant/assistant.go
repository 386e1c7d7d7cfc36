// Package assistant drives a language model over the travel tool server:
// the model decides which tools to call, the assistant executes them over
// MCP and feeds the results back until a final answer emerges.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/assistant/provider"
)

const systemPrompt = `You are a travel planning assistant. Use the available tools to look up ` +
	`real data (weather, public holidays, points of interest, country details, currency rates) ` +
	`and compose a clear natural-language answer from the tool results. Do not invent data the ` +
	`tools did not return.`

// maxToolRounds bounds the generate/dispatch loop so a model that keeps
// requesting tools cannot spin forever.
const maxToolRounds = 8

// ProviderFactory builds a fresh conversation for each query.
type ProviderFactory func() provider.ToolCallProvider

// Answer is the outcome of one processed query.
type Answer struct {
	Response  string   `json:"response"`
	ToolsUsed []string `json:"tools_used"`
}

// Assistant owns the tool session and the provider factory.
type Assistant struct {
	session ToolSession
	newChat ProviderFactory
}

// New creates an assistant over a tool session.
func New(session ToolSession, factory ProviderFactory) *Assistant {
	return &Assistant{
		session: session,
		newChat: factory,
	}
}

// Connect establishes the tool server session. Safe to call repeatedly.
func (a *Assistant) Connect(ctx context.Context) error {
	return a.session.Connect(ctx)
}

// Connected reports whether the tool server session is live.
func (a *Assistant) Connected() bool {
	return a.session.Connected()
}

// Disconnect tears the tool server session down.
func (a *Assistant) Disconnect() error {
	return a.session.Close()
}

// Tools returns the tool catalog of the connected server.
func (a *Assistant) Tools(ctx context.Context) ([]ToolInfo, error) {
	if err := a.session.Connect(ctx); err != nil {
		return nil, err
	}

	tools, err := a.session.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]ToolInfo, 0, len(tools))
	for _, tool := range tools {
		infos = append(infos, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: map[string]any{
				"type":       tool.InputSchema.Type,
				"properties": tool.InputSchema.Properties,
				"required":   tool.InputSchema.Required,
			},
		})
	}

	return infos, nil
}

// ToolInfo describes one tool for API responses.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// Query processes a natural-language query: the model is offered the server's
// tool catalog and the loop runs until it stops requesting tools.
func (a *Assistant) Query(ctx context.Context, query string) (*Answer, error) {
	if err := a.session.Connect(ctx); err != nil {
		return nil, err
	}

	tools, err := a.session.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	chat := a.newChat()
	chat.AddSystemMessage(systemPrompt)
	if err := chat.AddTools(ConvertMCPTools(tools)); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrModelUnavailable, err)
	}

	requestID := uuid.NewString()
	log.Info("Processing query", "request_id", requestID, "query", query)

	if err := chat.AddUserMessage(query); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrModelUnavailable, err)
	}

	var toolsUsed []string
	response := ""

	for round := 0; round < maxToolRounds; round++ {
		text, err := chat.Generate()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrModelUnavailable, err)
		}

		if text != "" {
			response = text
		}

		toolCalls := chat.GetToolCalls()
		if len(toolCalls) == 0 {
			break
		}

		for _, toolCall := range toolCalls {
			name := toolCall.Function.Name
			toolsUsed = append(toolsUsed, name)

			var args map[string]any
			if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
				chat.AddToolMessage(toolCall.ID, fmt.Sprintf("Error parsing arguments for %s: %v", name, err))
				continue
			}

			log.Info("Dispatching tool call", "request_id", requestID, "tool", name)

			result, err := a.session.CallTool(ctx, name, args)
			if err != nil {
				chat.AddToolMessage(toolCall.ID, fmt.Sprintf("Error executing tool %s: %v", name, err))
				continue
			}

			chat.AddToolMessage(toolCall.ID, result)
		}
	}

	return &Answer{
		Response:  response,
		ToolsUsed: toolsUsed,
	}, nil
}
