package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the task store loads",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListDaysHandler == nil {
			return ErrNotInitialized
		}

		days, err := app.ListDaysHandler.Handle(cmd.Context())
		if err != nil {
			return err
		}
		total := 0
		for _, d := range days {
			total += d.Total
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tasks across %d days\n", total, len(days))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
