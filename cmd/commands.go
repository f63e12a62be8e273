package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the registered commands and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := newApplication(cfg)
		if err != nil {
			return fmt.Errorf("building application: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, desc := range app.registry.Descriptors() {
			params := make([]string, len(desc.Parameters))
			for i, p := range desc.Parameters {
				param := fmt.Sprintf("%s:%s", p.Name, p.Type)
				if !p.Required {
					param = "[" + param + "]"
				}
				params[i] = param
			}

			fmt.Fprintf(out, "%-10s %-20s %s\n", desc.Name, strings.Join(params, " "), desc.Description)
		}

		if !cfg.Completion.Availability.Enabled {
			fmt.Fprintf(out, "\ncomplete is disabled: %s\n", cfg.Completion.Availability.Reason)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
