// Package plaid builds classifier profiles from a Plaid item: its accounts,
// liabilities and investment holdings.
package plaid

import (
	"context"
	"errors"
	"fmt"

	"github.com/plaid/plaid-go/v20/plaid"

	errx "github.com/newscat-core/server/internal/core/error"
	"github.com/newscat-core/server/internal/profile"
	logx "github.com/newscat-core/server/pkg/logger"
)

// Config is bound from PLAID_* variables.
type Config struct {
	ClientID    string `envconfig:"PLAID_CLIENT_ID"`
	Secret      string `envconfig:"PLAID_SECRET"`
	Environment string `envconfig:"PLAID_ENV" default:"sandbox"`
	AccessToken string `envconfig:"PLAID_ACCESS_TOKEN"`
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	switch {
	case c.ClientID == "":
		return errors.New("plaid client ID is required")
	case c.Secret == "":
		return errors.New("plaid secret is required")
	case c.AccessToken == "":
		return errors.New("plaid access token is required")
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	default:
		return fmt.Errorf("invalid Plaid environment %q: must be sandbox or production", c.Environment)
	}
}

// api is the slice of the Plaid API the profile builder needs.
type api interface {
	accounts(ctx context.Context) ([]plaid.AccountBase, error)
	liabilities(ctx context.Context) (*plaid.LiabilitiesObject, error)
	holdings(ctx context.Context) ([]plaid.Holding, []plaid.Security, error)
}

// Client fetches a Plaid item and reshapes it into a profile.Profile.
type Client struct {
	api api
}

// NewClient validates cfg and configures a Plaid API client for it.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{api: &plaidAPI{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
	}}, nil
}

// FetchProfile loads accounts (required) plus liabilities and holdings
// (best effort: items without those products still yield a profile).
func (c *Client) FetchProfile(ctx context.Context) (profile.Profile, error) {
	accounts, err := c.api.accounts(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("failed to fetch plaid accounts")
		return profile.Profile{}, errx.WrapProvider(err)
	}

	liabilities, err := c.api.liabilities(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("plaid liabilities unavailable; continuing without them")
		liabilities = nil
	}

	holdings, securities, err := c.api.holdings(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("plaid holdings unavailable; continuing without them")
		holdings, securities = nil, nil
	}

	p := ProfileFrom(accounts, liabilities, holdings, securities)
	logx.Debug().
		Int("accounts", len(p.Accounts)).
		Int("credit_cards", len(p.CreditCards)).
		Int("loans", len(p.Loans)).
		Int("investments", len(p.Investments)).
		Msg("built profile from plaid")
	return p, nil
}

type plaidAPI struct {
	client      *plaid.APIClient
	accessToken string
}

func (a *plaidAPI) accounts(ctx context.Context) ([]plaid.AccountBase, error) {
	req := plaid.NewAccountsGetRequest(a.accessToken)
	resp, _, err := a.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*req).Execute()
	if err != nil {
		return nil, describe("accounts", err)
	}
	return resp.GetAccounts(), nil
}

func (a *plaidAPI) liabilities(ctx context.Context) (*plaid.LiabilitiesObject, error) {
	req := plaid.NewLiabilitiesGetRequest(a.accessToken)
	resp, _, err := a.client.PlaidApi.LiabilitiesGet(ctx).LiabilitiesGetRequest(*req).Execute()
	if err != nil {
		return nil, describe("liabilities", err)
	}
	l := resp.GetLiabilities()
	return &l, nil
}

func (a *plaidAPI) holdings(ctx context.Context) ([]plaid.Holding, []plaid.Security, error) {
	req := plaid.NewInvestmentsHoldingsGetRequest(a.accessToken)
	resp, _, err := a.client.PlaidApi.InvestmentsHoldingsGet(ctx).InvestmentsHoldingsGetRequest(*req).Execute()
	if err != nil {
		return nil, nil, describe("holdings", err)
	}
	return resp.GetHoldings(), resp.GetSecurities(), nil
}

func describe(what string, err error) error {
	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return fmt.Errorf("plaid %s: %s - %s: %w", what, plaidErr.ErrorCode, plaidErr.ErrorMessage, err)
	}
	return fmt.Errorf("plaid %s: %w", what, err)
}
