package classifier

import (
	"context"
	"strings"

	"github.com/newscat-core/server/internal/category"
	"github.com/newscat-core/server/internal/profile"
)

// AccountRule maps an account-type substring to the categories it implies.
type AccountRule struct {
	Key        string
	Categories []category.Code
}

// KeywordRule maps a statement substring to a single category.
type KeywordRule struct {
	Keyword  string
	Category category.Code
}

var accountRules = [...]AccountRule{
	{"crypto", []category.Code{category.Blockchain}},
	{"investment", []category.Code{category.Earnings, category.IPO, category.MergersAndAcquisitions, category.FinancialMarkets, category.Technology}},
	{"retirement", []category.Code{category.EconomyMacro, category.EconomyMonetary, category.FinancialMarkets}},
	{"credit_card", []category.Code{category.EconomyMonetary, category.Finance}},
	{"loan", []category.Code{category.EconomyFiscal, category.Finance}},
	{"mortgage", []category.Code{category.RealEstate, category.EconomyMonetary}},
	{"student_loan", []category.Code{category.EconomyFiscal, category.Finance}},
	{"bank", []category.Code{category.Finance, category.EconomyMacro}},
	{"real_estate", []category.Code{category.RealEstate}},
	{"energy", []category.Code{category.EnergyTransportation}},
	{"manufacturing", []category.Code{category.Manufacturing}},
	{"retail", []category.Code{category.RetailWholesale}},
	{"life_sciences", []category.Code{category.LifeSciences}},
}

var keywordRules = [...]KeywordRule{
	{"crypto", category.Blockchain},
	{"bitcoin", category.Blockchain},
	{"ethereum", category.Blockchain},
	{"stock", category.FinancialMarkets},
	{"invest", category.FinancialMarkets},
	{"retire", category.EconomyMacro},
	{"mortgage", category.RealEstate},
	{"house", category.RealEstate},
	{"home", category.RealEstate},
	{"loan", category.Finance},
	{"debt", category.Finance},
	{"save", category.EconomyMonetary},
	{"interest rate", category.EconomyMonetary},
	{"inflation", category.EconomyMonetary},
	{"tax", category.EconomyFiscal},
	{"job", category.EconomyMacro},
	{"energy", category.EnergyTransportation},
	{"tech", category.Technology},
	{"manufacturing", category.Manufacturing},
	{"retail", category.RetailWholesale},
	{"biotech", category.LifeSciences},
	{"health", category.LifeSciences},
}

// priorityKeys are account-rule keys; their categories lead the output in this order.
var priorityKeys = [...]string{"student_loan", "mortgage", "investment", "crypto", "credit_card", "loan", "bank"}

var (
	creditCardCategories  = []category.Code{category.EconomyMonetary, category.Finance}
	studentLoanCategories = []category.Code{category.EconomyFiscal, category.Finance}
	mortgageCategories    = []category.Code{category.RealEstate, category.EconomyMonetary}
	otherLoanCategories   = []category.Code{category.Finance, category.EconomyFiscal}
	equityCategories      = []category.Code{category.Earnings, category.IPO, category.MergersAndAcquisitions, category.FinancialMarkets, category.Technology}
)

// AccountRules returns a copy of the account-type table in declaration order.
func AccountRules() []AccountRule {
	out := make([]AccountRule, len(accountRules))
	for i, r := range accountRules {
		out[i] = AccountRule{Key: r.Key, Categories: append([]category.Code(nil), r.Categories...)}
	}
	return out
}

// KeywordRules returns a copy of the statement keyword table in declaration order.
func KeywordRules() []KeywordRule {
	return append([]KeywordRule(nil), keywordRules[:]...)
}

// PriorityKeys returns the account-rule keys that lead the output, in order.
func PriorityKeys() []string {
	return append([]string(nil), priorityKeys[:]...)
}

// Categories implied by profile sections rather than account types.
func CreditCardCategories() []category.Code  { return clone(creditCardCategories) }
func StudentLoanCategories() []category.Code { return clone(studentLoanCategories) }
func MortgageCategories() []category.Code    { return clone(mortgageCategories) }
func OtherLoanCategories() []category.Code   { return clone(otherLoanCategories) }
func EquityCategories() []category.Code      { return clone(equityCategories) }

func clone(codes []category.Code) []category.Code {
	return append([]category.Code(nil), codes...)
}

func accountCategories(key string) []category.Code {
	for _, r := range accountRules {
		if r.Key == key {
			return r.Categories
		}
	}
	return nil
}

// Categorize is the deterministic rule engine. It has no side effects and
// always returns at least the baseline category.
func Categorize(p profile.Profile, statement string) category.List {
	relevant := category.Set{}

	for _, acct := range p.Accounts {
		t := strings.ToLower(acct.Type)
		for _, r := range accountRules {
			if strings.Contains(t, r.Key) {
				relevant.Add(r.Categories...)
			}
		}
	}

	if len(p.CreditCards) > 0 {
		relevant.Add(creditCardCategories...)
	}

	for _, loan := range p.Loans {
		t := strings.ToLower(loan.Type)
		if strings.Contains(t, "student") {
			relevant.Add(studentLoanCategories...)
		}
		// The else binds to the mortgage check only: a student loan that is
		// not a mortgage also receives the generic loan categories.
		if strings.Contains(t, "mortgage") {
			relevant.Add(mortgageCategories...)
		} else {
			relevant.Add(otherLoanCategories...)
		}
	}

	for _, inv := range p.Investments {
		t := strings.ToLower(inv.Type)
		if strings.Contains(t, "crypto") {
			relevant.Add(category.Blockchain)
		}
		if strings.Contains(t, "stock") || strings.Contains(t, "etf") {
			relevant.Add(equityCategories...)
		}
	}

	s := strings.ToLower(statement)
	for _, kw := range keywordRules {
		if strings.Contains(s, kw.Keyword) {
			relevant.Add(kw.Category)
		}
	}

	relevant.Add(category.Baseline)

	return prioritize(relevant)
}

func prioritize(relevant category.Set) category.List {
	out := make(category.List, 0, len(relevant))
	emitted := category.Set{}
	emit := func(c category.Code) {
		if relevant.Has(c) && !emitted.Has(c) {
			emitted.Add(c)
			out = append(out, c)
		}
	}

	for _, key := range priorityKeys {
		for _, c := range accountCategories(key) {
			emit(c)
		}
	}
	for _, c := range category.All() {
		emit(c)
	}
	return out
}

// Rules is the deterministic strategy.
type Rules struct{}

func NewRules() *Rules { return &Rules{} }

func (*Rules) Name() string { return StrategyRules }

// Classify never fails; the context is accepted only to satisfy Classifier.
func (*Rules) Classify(_ context.Context, p profile.Profile, statement string) (Result, error) {
	return Result{RelevantCategories: Categorize(p, statement)}, nil
}

var _ Classifier = (*Rules)(nil)
