// Package travel implements the MCP tools exposed by the travel bridge server.
package travel

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
)

// GenerateSchema reflects a parameter struct into a JSON schema suitable for
// function calling.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// FunctionParameters converts a reflected schema into the map form the OpenAI
// function calling API expects.
func FunctionParameters(schema any) openai.FunctionParameters {
	raw, err := json.Marshal(schema)
	if err != nil {
		return openai.FunctionParameters{}
	}

	var params openai.FunctionParameters
	if err := json.Unmarshal(raw, &params); err != nil {
		return openai.FunctionParameters{}
	}

	return params
}

// ToOpenAIFunction builds an OpenAI tool definition from an MCP tool handle
// and a reflected parameter schema.
func ToOpenAIFunction(handle mcp.Tool, schema any) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: openai.F(openai.ChatCompletionToolTypeFunction),
		Function: openai.F(openai.FunctionDefinitionParam{
			Name:        openai.String(handle.Name),
			Description: openai.String(handle.Description),
			Parameters:  openai.F(FunctionParameters(schema)),
		}),
	}
}

// Helper to extract a string argument.
func GetStringArg(req mcp.CallToolRequest, key string) (string, error) {
	val, ok := req.Params.Arguments[key]
	if !ok {
		return "", fmt.Errorf("missing argument: %s", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("argument %s is not a string", key)
	}

	return str, nil
}

// Helper to extract an optional string argument with a fallback.
func GetStringArgDefault(req mcp.CallToolRequest, key, fallback string) string {
	if str, ok := req.Params.Arguments[key].(string); ok && str != "" {
		return str
	}
	return fallback
}

// Helper to extract a float64 argument.
func GetFloat64Arg(req mcp.CallToolRequest, key string) (float64, error) {
	val, ok := req.Params.Arguments[key]
	if !ok {
		return 0, fmt.Errorf("missing argument: %s", key)
	}

	f, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %s is not a number", key)
	}

	return f, nil
}

// Helper to extract an int argument from a float64.
func GetIntArg(req mcp.CallToolRequest, key string) (int, error) {
	f, err := GetFloat64Arg(req, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Helper to extract an optional int argument with a fallback.
func GetIntArgDefault(req mcp.CallToolRequest, key string, fallback int) int {
	if f, ok := req.Params.Arguments[key].(float64); ok {
		return int(f)
	}
	return fallback
}
