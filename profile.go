package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/newscat-core/server/internal/provider/plaid"
)

func profileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Fetch a profile from Plaid",
		Long: `Load the accounts, liabilities and investment holdings of the Plaid item behind
PLAID_ACCESS_TOKEN and print them as a classifier profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := plaid.NewClient(a.cfg.Plaid)
			if err != nil {
				return err
			}
			p, err := client.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
