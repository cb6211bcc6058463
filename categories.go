package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newscat-core/server/internal/category"
)

func categoriesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the news categories",
		Long:  `Display every category code with its label and description, in canonical order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if asJSON {
				type entry struct {
					Code        string `json:"code"`
					Label       string `json:"label"`
					Description string `json:"description"`
				}
				entries := make([]entry, 0, category.Count())
				for _, c := range category.All() {
					entries = append(entries, entry{string(c), c.Label(), c.Description()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tLABEL\tDESCRIPTION")
			for _, c := range category.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c, c.Label(), c.Description())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
