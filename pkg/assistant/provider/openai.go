package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements ToolCallProvider for OpenAI models
type OpenAIProvider struct {
	client        *openai.Client
	model         string
	params        openai.ChatCompletionNewParams
	tools         []openai.ChatCompletionToolParam
	lastToolCalls []openai.ChatCompletionMessageToolCall
}

// NewOpenAIProvider creates a new provider for OpenAI. An empty apiKey falls
// back to the OPENAI_API_KEY environment variable; an empty model falls back
// to gpt-4o-mini.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
		params: openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{}),
			Model:    openai.F(model),
		},
	}
}

// Generate produces a response from OpenAI
func (provider *OpenAIProvider) Generate() (string, error) {
	if len(provider.tools) > 0 {
		provider.params.Tools = openai.F(provider.tools)
	}

	provider.params.Model = openai.F(provider.model)

	ctx := context.Background()
	chat, err := provider.client.Chat.Completions.New(ctx, provider.params)
	if err != nil {
		return "", fmt.Errorf("openai completion error: %w", err)
	}

	// Store the message in the conversation history
	provider.params.Messages.Value = append(provider.params.Messages.Value, chat.Choices[0].Message)

	// Save tool calls for later retrieval
	provider.lastToolCalls = chat.Choices[0].Message.ToolCalls

	content := chat.Choices[0].Message.Content
	if content == "" && len(provider.lastToolCalls) == 0 {
		return "", errors.New("no content or tool calls in response")
	}

	return content, nil
}

// AddUserMessage adds a user message to the conversation
func (provider *OpenAIProvider) AddUserMessage(content string) error {
	provider.params.Messages.Value = append(provider.params.Messages.Value,
		openai.UserMessage(content))
	return nil
}

// AddSystemMessage adds a system message to the conversation
func (provider *OpenAIProvider) AddSystemMessage(content string) error {
	// Find existing system message or add a new one
	for i, msg := range provider.params.Messages.Value {
		_, ok := msg.(*openai.ChatCompletionSystemMessageParam)
		if ok {
			// Replace existing system message
			provider.params.Messages.Value[i] = openai.SystemMessage(content)
			return nil
		}
	}

	// No existing system message, add it at the beginning
	provider.params.Messages.Value = append(
		[]openai.ChatCompletionMessageParamUnion{openai.SystemMessage(content)},
		provider.params.Messages.Value...,
	)
	return nil
}

// AddToolMessage adds a tool response message to the conversation
func (provider *OpenAIProvider) AddToolMessage(toolCallID string, content string) error {
	provider.params.Messages.Value = append(provider.params.Messages.Value,
		openai.ToolMessage(toolCallID, content))
	return nil
}

// GetModel returns the current model being used
func (provider *OpenAIProvider) GetModel() string {
	return provider.model
}

// SetModel sets the model to use
func (provider *OpenAIProvider) SetModel(model string) error {
	if model == "" {
		return errors.New("model name is required")
	}

	provider.model = model
	return nil
}

// AddTools adds function calling tools to the provider
func (provider *OpenAIProvider) AddTools(tools []openai.ChatCompletionToolParam) error {
	provider.tools = append(provider.tools, tools...)
	return nil
}

// GetToolCalls returns any tool calls from the last generation
func (provider *OpenAIProvider) GetToolCalls() []openai.ChatCompletionMessageToolCall {
	return provider.lastToolCalls
}
