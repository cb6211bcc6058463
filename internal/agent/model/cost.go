package model

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// Pricing defines USD cost per 1M tokens for input/output.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// Gemini standard text pricing. Thinking tokens bill as output.
var defaultPricing = map[string]Pricing{
	"gemini-2.5-pro":        {InputPerM: 1.25, OutputPerM: 10.00},
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
	"gemini-2.0-flash":      {InputPerM: 0.10, OutputPerM: 0.40},
}

// ResolvePricing returns the pricing for a model, or zero pricing if unknown.
// A "models/" prefix is ignored.
func ResolvePricing(model string) Pricing {
	model = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(model)), "models/")
	return defaultPricing[model]
}

// UsageCost is the priced token usage of one model call.
type UsageCost struct {
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	InputCost        float64 `json:"input_cost"`
	OutputCost       float64 `json:"output_cost"`
	TotalCost        float64 `json:"total_cost"`
}

// ComputeCost converts token usage to USD using per-1M pricing.
func ComputeCost(model string, usage *schema.TokenUsage) UsageCost {
	c := UsageCost{Model: model}
	if usage == nil {
		return c
	}
	p := ResolvePricing(model)
	c.PromptTokens = usage.PromptTokens
	c.CompletionTokens = usage.CompletionTokens
	c.TotalTokens = usage.TotalTokens
	c.InputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	c.OutputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	c.TotalCost = c.InputCost + c.OutputCost
	return c
}
