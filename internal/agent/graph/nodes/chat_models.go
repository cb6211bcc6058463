package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/newscat-core/server/internal/agent/model"
	logx "github.com/newscat-core/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey     string
	BaseURL    string
	Classifier *model.ClassifierModelConfig
}

// ChatModels holds the chat model the classifier graph calls.
type ChatModels struct {
	Classifier          einomodel.BaseChatModel
	ClassifierModelName string
}

// NewChatModels creates the Gemini classifier model with the given configuration
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.Classifier == nil {
		return nil, fmt.Errorf("classifier model config is nil")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	gcfg := &gemini.Config{
		Client:      client,
		Model:       config.Classifier.Model,
		Temperature: &config.Classifier.Temperature,
		MaxTokens:   &config.Classifier.MaxTokens,
	}
	if config.Classifier.ThinkingBudget > 0 {
		gcfg.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(config.Classifier.ThinkingBudget),
		}
	}

	chatModel, err := gemini.NewChatModel(ctx, gcfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	return &ChatModels{
		Classifier:          chatModel,
		ClassifierModelName: config.Classifier.Model,
	}, nil
}
