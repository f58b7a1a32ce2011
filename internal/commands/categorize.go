package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/categorize"
)

func newCategorizeCommand(a *app) *cobra.Command {
	var accountID int64
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Auto-suggest categories for uncategorized transactions",
		Long: "Asks the configured Gemini model for a category, one call per\n" +
			"uncategorized transaction, pausing between calls to respect the API\n" +
			"rate limit. Transactions that already have a category are skipped,\n" +
			"so an interrupted run can simply be restarted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.GeminiAPIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is not set")
			}

			suggester, err := categorize.NewGeminiSuggester(cmd.Context(), a.cfg.GeminiAPIKey, a.cfg.Model)
			if err != nil {
				return err
			}

			var scope *int64
			if accountID > 0 {
				scope = &accountID
			}
			c := categorize.New(a.store, suggester, a.cfg.CategorizeDelay, a.cfg.CategorizeTimeout)
			res, err := c.Run(cmd.Context(), scope)
			if err != nil {
				return err
			}
			fmt.Printf("Categorized %d transactions, %d failed\n", res.Categorized, res.Failed)
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "scope to one account id")
	return cmd
}
