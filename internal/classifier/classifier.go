// Package classifier selects the news categories relevant to a user's
// financial profile and stated goals. Strategies share the Classifier
// interface so callers can swap the deterministic rule engine for the
// language-model variant without changing the result shape.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newscat-core/server/internal/category"
	"github.com/newscat-core/server/internal/profile"
)

const (
	StrategyRules = "rules"
	StrategyLLM   = "llm"
)

// Classifier turns a profile and a free-text statement into prioritized categories.
type Classifier interface {
	Classify(ctx context.Context, p profile.Profile, statement string) (Result, error)
}

// Named is implemented by strategies that report a stable name, used in
// logs and cache keys.
type Named interface {
	Name() string
}

// NameOf returns c's strategy name, or its Go type when it has none.
func NameOf(c Classifier) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

// Result is the classifier output as exchanged with other tools.
type Result struct {
	RelevantCategories category.List `json:"relevant_categories"`
}

// MarshalJSON keeps the list as [] rather than null when empty.
func (r Result) MarshalJSON() ([]byte, error) {
	cats := r.RelevantCategories
	if cats == nil {
		cats = category.List{}
	}
	return json.Marshal(struct {
		RelevantCategories category.List `json:"relevant_categories"`
	}{cats})
}

// Topics renders the result as the comma-separated topic filter a news
// sentiment feed expects.
func (r Result) Topics() string {
	return r.RelevantCategories.Join(",")
}

// ClassifyJSON decodes a serialized profile, classifies it and encodes the
// result. Malformed input surfaces as a parse error.
func ClassifyJSON(ctx context.Context, c Classifier, profileJSON []byte, statement string) ([]byte, error) {
	p, err := profile.Decode(profileJSON)
	if err != nil {
		return nil, err
	}
	res, err := c.Classify(ctx, p, statement)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}
