package plaid

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/newscat-core/server/internal/core/error"
	"github.com/newscat-core/server/internal/profile"
)

func account(id, typ, subtype string) plaid.AccountBase {
	a := plaid.AccountBase{}
	a.SetAccountId(id)
	a.SetType(plaid.AccountType(typ))
	if subtype != "" {
		a.SetSubtype(plaid.AccountSubtype(subtype))
	}
	return a
}

func security(id, typ string) plaid.Security {
	s := plaid.Security{}
	s.SetSecurityId(id)
	s.SetType(typ)
	return s
}

func holding(securityID string) plaid.Holding {
	h := plaid.Holding{}
	h.SetSecurityId(securityID)
	return h
}

type fakeAPI struct {
	accts      []plaid.AccountBase
	liab       *plaid.LiabilitiesObject
	holds      []plaid.Holding
	secs       []plaid.Security
	acctErr    error
	liabErr    error
	holdingErr error
}

func (f *fakeAPI) accounts(context.Context) ([]plaid.AccountBase, error) {
	return f.accts, f.acctErr
}

func (f *fakeAPI) liabilities(context.Context) (*plaid.LiabilitiesObject, error) {
	return f.liab, f.liabErr
}

func (f *fakeAPI) holdings(context.Context) ([]plaid.Holding, []plaid.Security, error) {
	return f.holds, f.secs, f.holdingErr
}

func TestConfigValidate(t *testing.T) {
	valid := Config{ClientID: "id", Secret: "secret", Environment: "sandbox", AccessToken: "token"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing client id", func(c *Config) { c.ClientID = "" }, "plaid client ID is required"},
		{"missing secret", func(c *Config) { c.Secret = "" }, "plaid secret is required"},
		{"missing token", func(c *Config) { c.AccessToken = "" }, "plaid access token is required"},
		{"bad environment", func(c *Config) { c.Environment = "development" }, "invalid Plaid environment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{ClientID: "id", Secret: "s", Environment: "sandbox", AccessToken: "t"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestProfileFromAccounts(t *testing.T) {
	p := ProfileFrom([]plaid.AccountBase{
		account("a1", "depository", "checking"),
		account("a2", "investment", "401k"),
		account("a3", "investment", "brokerage"),
		account("a4", "investment", "crypto exchange"),
		account("a5", "credit", "credit card"),
		account("a6", "loan", "student"),
		account("a7", "loan", "mortgage"),
		account("a8", "loan", "auto"),
		account("a9", "other", ""),
	}, nil, nil, nil)

	assert.Equal(t, []profile.Entry{
		{Type: "bank checking"},
		{Type: "retirement 401k"},
		{Type: "investment brokerage"},
		{Type: "crypto exchange"},
		{Type: "other"},
	}, p.Accounts)
	assert.Equal(t, []profile.Entry{
		{Type: "student_loan"},
		{Type: "mortgage"},
		{Type: "auto loan"},
	}, p.Loans)
	require.Len(t, p.CreditCards, 1)
	assert.Equal(t, "a5", p.CreditCards[0]["account_id"])
	assert.Empty(t, p.Investments)
}

func TestProfileFromLiabilitiesRefinesLoans(t *testing.T) {
	student := plaid.StudentLoan{}
	student.SetAccountId("l1")
	mortgage := plaid.MortgageLiability{}
	mortgage.SetAccountId("l3")
	knownCard := plaid.CreditCardLiability{}
	knownCard.SetAccountId("c1")
	newCard := plaid.CreditCardLiability{}
	newCard.SetAccountId("c2")

	liab := plaid.LiabilitiesObject{}
	liab.SetStudent([]plaid.StudentLoan{student})
	liab.SetMortgage([]plaid.MortgageLiability{mortgage})
	liab.SetCredit([]plaid.CreditCardLiability{knownCard, newCard})

	p := ProfileFrom([]plaid.AccountBase{
		account("l1", "loan", "loan"),
		account("c1", "credit", "credit card"),
	}, &liab, nil, nil)

	assert.Equal(t, []profile.Entry{{Type: "student_loan"}, {Type: "mortgage"}}, p.Loans)
	assert.Len(t, p.CreditCards, 2)
}

func TestProfileFromHoldings(t *testing.T) {
	p := ProfileFrom(nil, nil,
		[]plaid.Holding{holding("s1"), holding("s2"), holding("s3"), holding("s4"), holding("missing")},
		[]plaid.Security{
			security("s1", "equity"),
			security("s2", "cryptocurrency"),
			security("s3", "ETF"),
			security("s4", "mutual fund"),
		})

	assert.Equal(t, []profile.Entry{
		{Type: "stock"},
		{Type: "crypto"},
		{Type: "etf"},
		{Type: "mutual fund"},
	}, p.Investments)
}

func TestFetchProfile(t *testing.T) {
	c := &Client{api: &fakeAPI{
		accts:      []plaid.AccountBase{account("a1", "depository", "savings")},
		liabErr:    errors.New("PRODUCTS_NOT_SUPPORTED"),
		holds:      []plaid.Holding{holding("s1")},
		secs:       []plaid.Security{security("s1", "etf")},
		holdingErr: nil,
	}}

	p, err := c.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []profile.Entry{{Type: "bank savings"}}, p.Accounts)
	assert.Equal(t, []profile.Entry{{Type: "etf"}}, p.Investments)
	assert.Empty(t, p.Loans)
}

func TestFetchProfileAccountsFailure(t *testing.T) {
	c := &Client{api: &fakeAPI{acctErr: errors.New("ITEM_LOGIN_REQUIRED")}}

	_, err := c.FetchProfile(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errx.StatusOf(err))
}
