package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestResolvePricing(t *testing.T) {
	assert.Equal(t, Pricing{InputPerM: 0.30, OutputPerM: 2.50}, ResolvePricing("gemini-2.5-flash"))
	assert.Equal(t, Pricing{InputPerM: 0.30, OutputPerM: 2.50}, ResolvePricing("models/Gemini-2.5-Flash"))
	assert.Equal(t, Pricing{}, ResolvePricing("unknown-model"))
}

func TestComputeCost(t *testing.T) {
	c := ComputeCost("gemini-2.5-flash-lite", &schema.TokenUsage{
		PromptTokens:     1_000_000,
		CompletionTokens: 500_000,
		TotalTokens:      1_500_000,
	})
	assert.InDelta(t, 0.10, c.InputCost, 1e-9)
	assert.InDelta(t, 0.20, c.OutputCost, 1e-9)
	assert.InDelta(t, 0.30, c.TotalCost, 1e-9)
	assert.Equal(t, 1_500_000, c.TotalTokens)

	empty := ComputeCost("gemini-2.5-flash", nil)
	assert.Equal(t, UsageCost{Model: "gemini-2.5-flash"}, empty)
}
