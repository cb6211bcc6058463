package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/newscat-core/server/internal/agent/graph/parsers"
	"github.com/newscat-core/server/internal/agent/graph/prompts"
	"github.com/newscat-core/server/internal/agent/model"
	"github.com/newscat-core/server/internal/classifier"
	logx "github.com/newscat-core/server/pkg/logger"
)

const (
	NodeInputConverter      = "input_converter"
	NodeClassifierChatModel = "classifier_chat_model"
	NodeCategoryParser      = "category_parser"
)

// NewInputConverterPreHandler records the request in graph state.
func NewInputConverterPreHandler(modelName string) func(context.Context, model.ClassifyInput, *model.AppState) (model.ClassifyInput, error) {
	return func(ctx context.Context, in model.ClassifyInput, s *model.AppState) (model.ClassifyInput, error) {
		s.RequestID = in.RequestID
		s.Model = modelName
		s.TotalCostUSD = 0
		s.Usage = nil
		return in, nil
	}
}

// NewInputConverterNode renders the classifier prompt for one request.
func NewInputConverterNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ClassifyInput) ([]*schema.Message, error) {
		msgs, err := prompts.RenderClassifierMessages(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("render classifier prompt: %w", err)
		}
		return msgs, nil
	})
}

// NewClassifierChatModelPostHandler prices the model call and accumulates it in state.
func NewClassifierChatModelPostHandler() func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
			return out, nil
		}
		cost := model.ComputeCost(state.Model, out.ResponseMeta.Usage)
		state.Usage = append(state.Usage, cost)
		state.TotalCostUSD += cost.TotalCost

		if out.Extra == nil {
			out.Extra = map[string]any{}
		}
		out.Extra["usage_cost"] = cost
		out.Extra["usage_cost_total_usd"] = state.TotalCostUSD

		logx.Debug().
			Str("request_id", state.RequestID).
			Str("node", NodeClassifierChatModel).
			Str("model", cost.Model).
			Int("prompt_tokens", cost.PromptTokens).
			Int("completion_tokens", cost.CompletionTokens).
			Int("total_tokens", cost.TotalTokens).
			Float64("total_cost_usd", cost.TotalCost).
			Msg("LLM usage")
		return out, nil
	}
}

// NewCategoryParserNode converts the model reply into a classifier result.
func NewCategoryParserNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, resp *schema.Message) (classifier.Result, error) {
		if resp == nil {
			return classifier.Result{}, fmt.Errorf("classifier model returned no message")
		}
		parsed, err := parsers.ParseCategoryResponse(resp.Content)
		if err != nil {
			logx.Error().Err(err).Msg("Error parsing classifier response")
			return classifier.Result{}, err
		}

		_ = compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
			ev := logx.Debug().
				Str("request_id", s.RequestID).
				Strs("categories", parsed.Categories.Strings()).
				Float64("total_cost_usd", s.TotalCostUSD)
			if dropped, ok := parsed.Metadata["dropped"].([]string); ok {
				ev = ev.Strs("dropped", dropped)
			}
			ev.Msg("classification parsed")
			return nil
		})

		return classifier.Result{RelevantCategories: parsed.Categories}, nil
	})
}
