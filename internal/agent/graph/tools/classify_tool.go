package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/newscat-core/server/internal/classifier"
	"github.com/newscat-core/server/internal/profile"
	logx "github.com/newscat-core/server/pkg/logger"
)

// ===================================
// Classify News Categories Tool
// ===================================

const ToolClassifyNewsCategories = "classify_news_categories"

// LenientString accepts a JSON string or any other JSON value. Non-string
// values keep their JSON text so profile.ParseEntries can read them.
type LenientString string

func (s *LenientString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = LenientString(str)
		return nil
	}
	*s = LenientString(b)
	return nil
}

type ClassifyNewsInput struct {
	Accounts      LenientString `json:"accounts,omitempty"`
	CreditCards   LenientString `json:"credit_cards,omitempty"`
	Loans         LenientString `json:"loans,omitempty"`
	Investments   LenientString `json:"investments,omitempty"`
	UserStatement LenientString `json:"user_statement,omitempty"`
}

func (in *ClassifyNewsInput) Profile() profile.Profile {
	return profile.FromFields(profile.Fields{
		Accounts:    string(in.Accounts),
		CreditCards: string(in.CreditCards),
		Loans:       string(in.Loans),
		Investments: string(in.Investments),
	})
}

func createClassifyNewsTool(c classifier.Classifier) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolClassifyNewsCategories,
			Desc: "Classify which financial news categories are relevant to a user, based on their accounts, credit cards, loans, investments and an optional statement of goals. Returns {\"relevant_categories\": [...]} ordered by relevance; pass the list as the topics filter of a news sentiment feed.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"accounts": {
					Type: "string",
					Desc: "User's accounts as a JSON array of {\"type\": ...} records or a comma-separated list of types (investment, bank, crypto, retirement, ...)",
				},
				"credit_cards": {
					Type: "string",
					Desc: "User's credit cards as a JSON array or a comma-separated list of issuers",
				},
				"loans": {
					Type: "string",
					Desc: "User's loans as a JSON array of {\"type\": ...} records or a comma-separated list of types (student_loan, mortgage, ...)",
				},
				"investments": {
					Type: "string",
					Desc: "User's investments as a JSON array of {\"type\": ...} records or a comma-separated list of types (stock, crypto, etf, ...)",
				},
				"user_statement": {
					Type: "string",
					Desc: "Optional free-text statement of the user's financial goals and interests",
				},
			}),
		},
		func(ctx context.Context, in *ClassifyNewsInput) (*classifier.Result, error) {
			res, err := c.Classify(ctx, in.Profile(), strings.TrimSpace(string(in.UserStatement)))
			if err != nil {
				logx.Error().Err(err).Str("tool", ToolClassifyNewsCategories).Msg("classification failed")
				return nil, err
			}
			return &res, nil
		},
	)
}
