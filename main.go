package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	logx "github.com/newscat-core/server/pkg/logger"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "newscat",
		Short: "Pick the financial news categories relevant to a user",
		Long: `newscat maps a user's accounts, credit cards, loans, investments and an
optional statement of goals to the news categories worth following.

Categories come out ordered by relevance and always include economy_macro.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")

	root.AddCommand(classifyCmd(a))
	root.AddCommand(categoriesCmd())
	root.AddCommand(profileCmd(a))
	root.AddCommand(toolCmd(a))

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		logx.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
