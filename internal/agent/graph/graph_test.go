package graph

import (
	"context"
	"errors"
	"net/http"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newscat-core/server/internal/category"
	"github.com/newscat-core/server/internal/classifier"
	errx "github.com/newscat-core/server/internal/core/error"
	"github.com/newscat-core/server/internal/profile"
)

type fakeChatModel struct {
	reply     string
	usage     *schema.TokenUsage
	err       error
	calls     int
	lastInput []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	msg := schema.AssistantMessage(f.reply, nil)
	if f.usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: f.usage}
	}
	return msg, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func newRunner(t *testing.T, cm *fakeChatModel) *Runner {
	t.Helper()
	r, err := NewRunner(context.Background(), &GraphConfig{ChatModel: cm, ModelName: "gemini-2.5-flash"})
	require.NoError(t, err)
	return r
}

func TestRunnerClassifies(t *testing.T) {
	cm := &fakeChatModel{
		reply: "```json\n{\"relevant_categories\": [\"real_estate\", \"blockchain\", \"sports\"]}\n```",
		usage: &schema.TokenUsage{PromptTokens: 1200, CompletionTokens: 30, TotalTokens: 1230},
	}
	r := newRunner(t, cm)
	assert.Equal(t, classifier.StrategyLLM, r.Name())

	res, err := r.Classify(context.Background(), profile.Profile{
		Accounts: []profile.Entry{{Type: "crypto"}},
		Loans:    []profile.Entry{{Type: "mortgage"}},
	}, "buying a house")
	require.NoError(t, err)
	assert.Equal(t, category.List{category.RealEstate, category.Blockchain, category.EconomyMacro}, res.RelevantCategories)

	require.Equal(t, 1, cm.calls)
	require.Len(t, cm.lastInput, 2)
	assert.Equal(t, schema.System, cm.lastInput[0].Role)
	assert.Contains(t, cm.lastInput[1].Content, "User Statement: buying a house")
	assert.Contains(t, cm.lastInput[1].Content, `"type": "mortgage"`)
}

func TestRunnerModelFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	r := newRunner(t, &fakeChatModel{err: boom})

	_, err := r.Classify(context.Background(), profile.Profile{}, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, boom.Error())
	assert.Equal(t, http.StatusBadGateway, errx.StatusOf(err))
}

func TestRunnerUnparseableReply(t *testing.T) {
	r := newRunner(t, &fakeChatModel{reply: "I'm not able to classify this."})

	_, err := r.Classify(context.Background(), profile.Profile{}, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errx.StatusOf(err))
}

func TestRunnerFallsBackToRules(t *testing.T) {
	r := newRunner(t, &fakeChatModel{reply: "no json here"})
	c := classifier.NewFallback(r, classifier.NewRules())

	res, err := c.Classify(context.Background(), profile.Profile{CreditCards: []profile.CreditCard{{}}}, "")
	require.NoError(t, err)
	assert.Equal(t, category.List{category.Finance, category.EconomyMonetary, category.EconomyMacro}, res.RelevantCategories)
}

func TestBuildGraphValidation(t *testing.T) {
	_, err := BuildGraph(context.Background(), nil)
	assert.Error(t, err)

	_, err = BuildGraph(context.Background(), &GraphConfig{})
	assert.Error(t, err)
}

func TestBuildClassifierGraphRequiresKey(t *testing.T) {
	_, err := BuildClassifierGraph(context.Background(), Config{})
	assert.Error(t, err)
}
