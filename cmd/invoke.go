package cmd

import (
	"fmt"

	"askbot/internal/adapters/handler"

	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command> [args...]",
	Short: "Run a single command locally and print the reply",
	Long: `Runs one command through the same dispatcher the chat transports use and
prints the reply to stdout. Use -- before arguments that start with a dash,
e.g. askbot invoke add -- -2 5`,
	Example: `  askbot invoke ping
  askbot invoke add 2 3
  askbot invoke complete "what is a goroutine?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := newApplication(cfg)
		if err != nil {
			return fmt.Errorf("building application: %w", err)
		}

		return handler.NewConsole(app.dispatcher).Run(cmd.Context(), args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
