package travel

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// ConvertCurrencyArgs are the parameters for the convert_currency tool
type ConvertCurrencyArgs struct {
	Amount       float64 `json:"amount" jsonschema_description:"Amount to convert (e.g. 100.0)"`
	FromCurrency string  `json:"from_currency" jsonschema_description:"Source currency code (e.g. 'USD', 'EUR', 'JPY')"`
	ToCurrency   string  `json:"to_currency" jsonschema_description:"Target currency code (e.g. 'EUR', 'USD', 'MYR')"`
}

var convertCurrencySchema = GenerateSchema[ConvertCurrencyArgs]()

// ConvertCurrencyTool converts an amount between currencies at the current
// exchange rate.
type ConvertCurrencyTool struct {
	handle   mcp.Tool
	exchange *travel.Exchange
}

// NewConvertCurrencyTool creates the convert_currency tool.
func NewConvertCurrencyTool(exchange *travel.Exchange) core.Tool {
	return &ConvertCurrencyTool{
		exchange: exchange,
		handle: mcp.NewTool(
			"convert_currency",
			mcp.WithDescription("Convert an amount from one currency to another using real-time exchange rates. Essential for travel budgeting and understanding local costs in your home currency."),
			mcp.WithNumber(
				"amount",
				mcp.Required(),
				mcp.Description("Amount to convert (e.g. 100.0)"),
			),
			mcp.WithString(
				"from_currency",
				mcp.Required(),
				mcp.Description("Source currency code (e.g. 'USD', 'EUR', 'JPY', 'GBP')"),
			),
			mcp.WithString(
				"to_currency",
				mcp.Required(),
				mcp.Description("Target currency code (e.g. 'EUR', 'USD', 'CAD', 'AUD')"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *ConvertCurrencyTool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *ConvertCurrencyTool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, convertCurrencySchema)
}

// Handler executes the tool.
func (tool *ConvertCurrencyTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := GetFloat64Arg(request, "amount")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	from, err := GetStringArg(request, "from_currency")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	to, err := GetStringArg(request, "to_currency")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	conversion, err := tool.exchange.Convert(ctx, amount, from, to)
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrUpstreamAPI, err)), nil
	}

	return core.NewTextResult(conversion.Format()), nil
}
