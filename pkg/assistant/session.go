package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
)

// ToolSession is the connection the assistant needs to a tool server.
type ToolSession interface {
	// Connect establishes the session; calling it on a live session is a no-op
	Connect(ctx context.Context) error

	// Connected reports whether the session is live
	Connected() bool

	// ListTools returns the server's tool catalog
	ListTools(ctx context.Context) ([]mcp.Tool, error)

	// CallTool invokes a named tool and returns its text content
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)

	// Close tears the session down
	Close() error
}

// Session is a ToolSession over an MCP server spawned as a child process and
// driven through its stdio streams.
type Session struct {
	command string
	args    []string

	mu     sync.Mutex
	client *client.StdioMCPClient
}

// NewSession creates a session that will spawn the given server command.
func NewSession(command string, args ...string) *Session {
	return &Session{
		command: command,
		args:    args,
	}
}

// Connect spawns the server and performs the MCP initialize handshake. An
// already-connected session is reused.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	mcpClient, err := client.NewStdioMCPClient(s.command, nil, s.args...)
	if err != nil {
		return fmt.Errorf("failed to start tool server %q: %w", s.command, err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "travel-bridge-client",
		Version: "1.0.0",
	}

	if _, err := mcpClient.Initialize(ctx, initRequest); err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	log.Info("Connected to tool server", "command", s.command)
	s.client = mcpClient
	return nil
}

// Connected reports whether the session is live.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}

// ListTools returns the server's tool catalog.
func (s *Session) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	s.mu.Lock()
	mcpClient := s.client
	s.mu.Unlock()

	if mcpClient == nil {
		return nil, fmt.Errorf("not connected to any server")
	}

	result, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return result.Tools, nil
}

// CallTool invokes a named tool on the server and flattens its content
// blocks into a single string.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	s.mu.Lock()
	mcpClient := s.client
	s.mu.Unlock()

	if mcpClient == nil {
		return "", fmt.Errorf("not connected to any server")
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := mcpClient.CallTool(ctx, request)
	if err != nil {
		return "", fmt.Errorf("tool call %q failed: %w", name, err)
	}

	text := flattenContent(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool %q returned an error: %s", name, text)
	}

	return text, nil
}

// Close tears the session down.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}

	err := s.client.Close()
	s.client = nil
	return err
}

// flattenContent joins the text blocks of a tool result. Content arrives
// either as typed TextContent or as raw JSON maps depending on which side of
// the wire produced it.
func flattenContent(content []any) string {
	var parts []string

	for _, block := range content {
		switch block := block.(type) {
		case mcp.TextContent:
			parts = append(parts, block.Text)
		case map[string]any:
			if text, ok := block["text"].(string); ok {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, "\n")
}

// ConvertMCPTools converts MCP tool descriptors to OpenAI function
// declarations, keeping only the schema fields function calling understands.
func ConvertMCPTools(tools []mcp.Tool) []openai.ChatCompletionToolParam {
	converted := make([]openai.ChatCompletionToolParam, 0, len(tools))

	for _, tool := range tools {
		properties := map[string]any{}

		for name, spec := range tool.InputSchema.Properties {
			propSchema, ok := spec.(map[string]any)
			if !ok {
				continue
			}

			clean := map[string]any{}
			if t, ok := propSchema["type"]; ok {
				clean["type"] = t
			}
			if description, ok := propSchema["description"]; ok {
				clean["description"] = description
			}
			if enum, ok := propSchema["enum"]; ok {
				clean["enum"] = enum
			}
			properties[name] = clean
		}

		required := tool.InputSchema.Required
		if required == nil {
			required = []string{}
		}

		converted = append(converted, openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.String(tool.Name),
				Description: openai.String(tool.Description),
				Parameters: openai.F(openai.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				}),
			}),
		})
	}

	return converted
}
