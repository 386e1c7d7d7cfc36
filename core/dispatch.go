package core

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry is the dispatch boundary for tool calls. Every call is validated
// against the registered tool's input schema before its handler runs.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) error {
	name := tool.Handle().Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns the tool registered under name
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Tools returns the registered tools in registration order
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Attach registers every tool with the MCP server, wrapping each handler so
// arguments are validated before any upstream call is made.
func (r *Registry) Attach(srv *server.MCPServer) {
	for _, name := range r.order {
		tool := r.tools[name]
		srv.AddTool(tool.Handle(), r.validated(tool))
	}
}

// Dispatch validates and executes a single tool call. Unknown tools and
// argument violations never reach a handler.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if err := ValidateArguments(tool.Handle(), args); err != nil {
		return nil, err
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	return tool.Handler(ctx, request)
}

func (r *Registry) validated(tool Tool) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ValidateArguments(tool.Handle(), request.Params.Arguments); err != nil {
			return NewErrorResult(err), nil
		}
		return tool.Handler(ctx, request)
	}
}

// ValidateArguments checks an argument map against a tool's input schema,
// verifying that required parameters are present and that every supplied
// parameter matches its declared JSON type.
func ValidateArguments(handle mcp.Tool, args map[string]any) error {
	schema := handle.InputSchema

	for _, required := range schema.Required {
		if _, ok := args[required]; !ok {
			return fmt.Errorf("%w: missing required parameter %q", ErrInvalidArguments, required)
		}
	}

	for key, value := range args {
		spec, ok := schema.Properties[key]
		if !ok || value == nil {
			continue
		}

		propSchema, ok := spec.(map[string]any)
		if !ok {
			continue
		}

		declaredType, ok := propSchema["type"].(string)
		if !ok {
			continue
		}

		if err := checkType(key, declaredType, value); err != nil {
			return err
		}
	}

	return nil
}

// checkType verifies a single value against a JSON schema type. Arguments
// arrive from a JSON decode, so numbers are always float64.
func checkType(key, declaredType string, value any) error {
	var ok bool

	switch declaredType {
	case "string":
		_, ok = value.(string)
	case "number", "integer":
		_, ok = value.(float64)
	case "boolean":
		_, ok = value.(bool)
	case "object":
		_, ok = value.(map[string]any)
	case "array":
		_, ok = value.([]any)
	default:
		return nil
	}

	if !ok {
		return fmt.Errorf("%w: parameter %q must be of type %s", ErrInvalidArguments, key, declaredType)
	}

	return nil
}
