package graph

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	"github.com/newscat-core/server/internal/agent/graph/nodes"
	"github.com/newscat-core/server/internal/agent/graph/observers"
	"github.com/newscat-core/server/internal/agent/model"
	"github.com/newscat-core/server/internal/classifier"
	errx "github.com/newscat-core/server/internal/core/error"
	"github.com/newscat-core/server/internal/profile"
	logx "github.com/newscat-core/server/pkg/logger"
)

// Config holds everything needed to build the classifier graph against Gemini.
type Config struct {
	APIKey          string
	BaseURL         string
	ClassifierModel model.ClassifierModelConfig
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModel einomodel.BaseChatModel
	ModelName string
}

// GraphBuilder handles the construction of the classifier graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.ClassifyInput, classifier.Result]
}

// Runner executes the compiled graph. It is the language-model classification strategy.
type Runner struct {
	runnable  compose.Runnable[model.ClassifyInput, classifier.Result]
	modelName string
}

func (r *Runner) Name() string { return classifier.StrategyLLM }

func (r *Runner) Classify(ctx context.Context, p profile.Profile, statement string) (classifier.Result, error) {
	in := model.ClassifyInput{
		RequestID: uuid.NewString(),
		Profile:   p,
		Statement: statement,
	}

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().Err(err).Str("request_id", in.RequestID).Str("model", r.modelName).Msg("classifier graph failed")
		return classifier.Result{}, errx.WrapModel(err)
	}

	logx.Info().
		Str("request_id", in.RequestID).
		Str("strategy", classifier.StrategyLLM).
		Str("model", r.modelName).
		Str("categories", out.Topics()).
		Msg("classified")
	return out, nil
}

// BuildClassifierGraph creates the Gemini chat model, builds the graph and returns a Runner.
func BuildClassifierGraph(ctx context.Context, cfg Config) (*Runner, error) {
	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Classifier: &cfg.ClassifierModel,
	})
	if err != nil {
		return nil, err
	}

	return NewRunner(ctx, &GraphConfig{
		ChatModel: cms.Classifier,
		ModelName: cms.ClassifierModelName,
	})
}

// NewRunner compiles the graph around an existing chat model.
func NewRunner(ctx context.Context, config *GraphConfig) (*Runner, error) {
	runnable, err := BuildGraph(ctx, config)
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("model", config.ModelName).Msg("Classifier graph built successfully")
	return &Runner{runnable: runnable, modelName: config.ModelName}, nil
}

// BuildGraph constructs and returns the compiled classifier graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.ClassifyInput, classifier.Result], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModel == nil {
		return nil, fmt.Errorf("chat model is not initialized")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.ClassifyInput, classifier.Result](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler(b.config.ModelName)),
	); err != nil {
		return fmt.Errorf("add %s: %w", nodes.NodeInputConverter, err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeClassifierChatModel,
		b.config.ChatModel,
		compose.WithStatePostHandler(nodes.NewClassifierChatModelPostHandler()),
	); err != nil {
		return fmt.Errorf("add %s: %w", nodes.NodeClassifierChatModel, err)
	}

	if err := b.graph.AddLambdaNode(nodes.NodeCategoryParser,
		nodes.NewCategoryParserNode(),
	); err != nil {
		return fmt.Errorf("add %s: %w", nodes.NodeCategoryParser, err)
	}
	return nil
}

// addEdges creates the linear flow between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeClassifierChatModel},
		{nodes.NodeClassifierChatModel, nodes.NodeCategoryParser},
		{nodes.NodeCategoryParser, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.ClassifyInput, classifier.Result], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithGraphName("news_classifier"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	return runnable, nil
}

var _ classifier.Classifier = (*Runner)(nil)
