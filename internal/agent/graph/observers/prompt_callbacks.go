package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/newscat-core/server/pkg/logger"
)

// newPromptHandler logs rendered prompts.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			if output == nil {
				return ctx
			}
			for i, m := range output.Result {
				if m == nil {
					continue
				}
				logx.Debug().
					Str("name", info.Name).
					Int("index", i).
					Str("role", string(m.Role)).
					Int("length", len(m.Content)).
					Msg("prompt rendered")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("name", info.Name).Msg("prompt render failed")
			return ctx
		},
	}
}
