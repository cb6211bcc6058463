package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/spf13/cobra"

	"github.com/newscat-core/server/internal/agent/graph/tools"
)

func toolCmd(a *app) *cobra.Command {
	var (
		opts       classifyOptions
		showSchema bool
	)

	cmd := &cobra.Command{
		Use:   "tool [arguments-json]",
		Short: "Run the classify_news_categories agent tool",
		Long: `Invoke the tool the way an agent would, with its JSON arguments given as an
argument or on stdin, and print the tool's response. --schema prints the tool
definition instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, cleanup, err := buildClassifier(ctx, a, &opts)
			if err != nil {
				return err
			}
			defer cleanup()

			registered := tools.GetClassifierTools(c)
			if showSchema {
				infos, err := tools.GetToolInfos(ctx, registered)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			var arguments string
			if len(args) == 1 {
				arguments = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read tool arguments: %w", err)
				}
				arguments = string(b)
			}
			if strings.TrimSpace(arguments) == "" {
				arguments = "{}"
			}

			inv, ok := registered[0].(tool.InvokableTool)
			if !ok {
				return fmt.Errorf("tool %s is not invokable", tools.ToolClassifyNewsCategories)
			}
			out, err := inv.InvokableRun(ctx, arguments)
			if err != nil {
				return fmt.Errorf("%s: %w", tools.ToolClassifyNewsCategories, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "rules", "classification strategy (rules, llm)")
	cmd.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "fail instead of falling back to rules when the llm strategy fails")
	cmd.Flags().BoolVar(&showSchema, "schema", false, "print the tool definition")
	return cmd
}
