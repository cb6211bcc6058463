package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newscat-core/server/internal/agent/graph"
	"github.com/newscat-core/server/internal/classifier"
	"github.com/newscat-core/server/internal/profile"
	"github.com/newscat-core/server/internal/provider/plaid"
	"github.com/newscat-core/server/internal/repo"
	logx "github.com/newscat-core/server/pkg/logger"
)

const (
	sourceFile  = "file"
	sourcePlaid = "plaid"
)

type classifyOptions struct {
	profilePath string
	statement   string
	strategy    string
	source      string
	noFallback  bool
	topics      bool
}

func classifyCmd(a *app) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a financial profile into news categories",
		Long: `Read a profile (JSON with accounts, credit_cards, loans and investments) and
an optional statement, and print {"relevant_categories": [...]}.

The rules strategy is deterministic. The llm strategy asks Gemini and falls
back to the rules when the model fails, unless --no-fallback is set.`,
		Example: `  newscat classify --profile profile.json --statement "saving for a house"
  cat profile.json | newscat classify --profile - --strategy llm
  newscat classify --source plaid --topics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "profile JSON file, or - for stdin (default: empty profile)")
	cmd.Flags().StringVarP(&opts.statement, "statement", "s", "", "free-text statement of goals and interests")
	cmd.Flags().StringVar(&opts.strategy, "strategy", classifier.StrategyRules, "classification strategy (rules, llm)")
	cmd.Flags().StringVar(&opts.source, "source", sourceFile, "profile source (file, plaid)")
	cmd.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "fail instead of falling back to rules when the llm strategy fails")
	cmd.Flags().BoolVar(&opts.topics, "topics", false, "print a comma-separated topics filter instead of JSON")

	return cmd
}

func runClassify(cmd *cobra.Command, a *app, opts *classifyOptions) error {
	ctx := cmd.Context()

	p, err := loadProfile(ctx, a, opts, cmd.InOrStdin())
	if err != nil {
		return err
	}

	c, cleanup, err := buildClassifier(ctx, a, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	res, err := c.Classify(ctx, p, opts.statement)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	logx.Debug().
		Str("strategy", classifier.NameOf(c)).
		Dur("elapsed", time.Since(start)).
		Msg("classification finished")

	out := cmd.OutOrStdout()
	if opts.topics {
		_, err = fmt.Fprintln(out, res.Topics())
		return err
	}
	return json.NewEncoder(out).Encode(res)
}

func loadProfile(ctx context.Context, a *app, opts *classifyOptions, stdin io.Reader) (profile.Profile, error) {
	switch opts.source {
	case sourcePlaid:
		client, err := plaid.NewClient(a.cfg.Plaid)
		if err != nil {
			return profile.Profile{}, err
		}
		return client.FetchProfile(ctx)
	case sourceFile:
	default:
		return profile.Profile{}, fmt.Errorf("unknown profile source %q: must be %s or %s", opts.source, sourceFile, sourcePlaid)
	}

	var (
		data []byte
		err  error
	)
	switch opts.profilePath {
	case "":
		return profile.Profile{}, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(opts.profilePath)
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return profile.Decode(data)
}

// buildClassifier assembles the strategy chain: the chosen strategy,
// wrapped in a rules fallback and the result cache when configured.
func buildClassifier(ctx context.Context, a *app, opts *classifyOptions) (classifier.Classifier, func(), error) {
	cleanup := func() {}

	var c classifier.Classifier
	switch strings.ToLower(opts.strategy) {
	case classifier.StrategyRules:
		return classifier.NewRules(), cleanup, nil
	case classifier.StrategyLLM:
		runner, err := graph.BuildClassifierGraph(ctx, graph.Config{
			APIKey:          a.cfg.APIKey,
			BaseURL:         a.cfg.BaseURL,
			ClassifierModel: a.cfg.Classifier,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("build llm classifier: %w", err)
		}
		c = runner
	default:
		return nil, cleanup, fmt.Errorf("unknown strategy %q: must be %s or %s", opts.strategy, classifier.StrategyRules, classifier.StrategyLLM)
	}

	if a.cfg.Cache.Enabled {
		ttl, err := time.ParseDuration(a.cfg.Cache.TTL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("invalid CLASSIFICATION_CACHE_TTL '%s': %w", a.cfg.Cache.TTL, err)
		}
		rdb, err := a.cfg.Redis.New(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("classification cache unavailable; continuing without it")
		} else {
			cleanup = func() { _ = rdb.Close() }
			c = classifier.NewCached(c, repo.NewRedisResultCache(rdb, ttl))
		}
	}

	if !opts.noFallback {
		c = classifier.NewFallback(c, classifier.NewRules())
	}
	return c, cleanup, nil
}
