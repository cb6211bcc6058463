package model

import (
	"github.com/newscat-core/server/internal/profile"
)

// AppState stores per-invocation state for the Eino Graph.
// It is registered via compose.WithGenLocalState and touched only inside
// state handlers or compose.ProcessState, which serialize access.
type AppState struct {
	RequestID string
	Model     string

	// Accumulated LLM cost (USD) across model invocations for this request
	TotalCostUSD float64
	Usage        []UsageCost
}

// ClassifyInput is the graph input.
type ClassifyInput struct {
	RequestID string          `json:"request_id"`
	Profile   profile.Profile `json:"profile"`
	Statement string          `json:"statement"`
}
