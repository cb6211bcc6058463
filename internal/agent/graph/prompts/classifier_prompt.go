package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/newscat-core/server/internal/agent/model"
	"github.com/newscat-core/server/internal/category"
	"github.com/newscat-core/server/internal/classifier"
)

//go:embed template/classifier_system.txt
var classifierSystemPrompt string

//go:embed template/classifier_user.txt
var classifierUserPrompt string

type categoryVar struct {
	Code        string
	Label       string
	Description string
}

type accountRuleVar struct {
	Key        string
	Categories string
}

type keywordRuleVar struct {
	Keyword  string
	Category string
}

func joinCodes(codes []category.Code) string {
	return category.List(codes).Join(", ")
}

// systemVars exposes the rule tables to the template so the model is
// instructed with the same mapping the rule engine applies.
func systemVars() map[string]any {
	cats := make([]categoryVar, 0, category.Count())
	for _, c := range category.All() {
		cats = append(cats, categoryVar{Code: string(c), Label: c.Label(), Description: c.Description()})
	}

	var accounts []accountRuleVar
	for _, r := range classifier.AccountRules() {
		accounts = append(accounts, accountRuleVar{Key: r.Key, Categories: joinCodes(r.Categories)})
	}

	var keywords []keywordRuleVar
	for _, r := range classifier.KeywordRules() {
		keywords = append(keywords, keywordRuleVar{Keyword: r.Keyword, Category: string(r.Category)})
	}

	return map[string]any{
		"Categories":   cats,
		"AccountRules": accounts,
		"KeywordRules": keywords,
		"PriorityKeys": strings.Join(classifier.PriorityKeys(), ", "),
		"CreditCard":   joinCodes(classifier.CreditCardCategories()),
		"StudentLoan":  joinCodes(classifier.StudentLoanCategories()),
		"Mortgage":     joinCodes(classifier.MortgageCategories()),
		"OtherLoan":    joinCodes(classifier.OtherLoanCategories()),
		"Equity":       joinCodes(classifier.EquityCategories()),
		"Baseline":     string(category.Baseline),
	}
}

// RenderClassifierMessages renders the system and user messages for one
// request via the Eino prompt component, which also emits prompt callbacks.
func RenderClassifierMessages(ctx context.Context, in model.ClassifyInput) ([]*schema.Message, error) {
	profileJSON, err := json.MarshalIndent(in.Profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("classifier prompt: encode profile: %w", err)
	}

	vars := systemVars()
	vars["ProfileJSON"] = string(profileJSON)
	vars["Statement"] = strings.TrimSpace(in.Statement)

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("classifier prompt render: %w", err)
	}
	if len(msgs) != 2 || msgs[0] == nil || msgs[1] == nil {
		return nil, fmt.Errorf("classifier prompt render: unexpected result")
	}
	return msgs, nil
}
