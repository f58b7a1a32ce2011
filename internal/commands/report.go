package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/core"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		accountID int64
		fromStr   string
		toStr     string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Per-category expense summary for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var scope *int64
			if accountID > 0 {
				scope = &accountID
			}
			txs, err := a.store.ListTransactions(cmd.Context(), scope)
			if err != nil {
				return err
			}

			from, to, err := dateRange(fromStr, toStr)
			if err != nil {
				return err
			}
			txs = core.FilterDateRange(txs, from, to)

			fmt.Printf("Expense report %s - %s\n", from.String(), to.String())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tAMOUNT")
			for _, row := range core.ExpenseSummary(txs) {
				fmt.Fprintf(w, "%s\t%s\n", row.Category, row.Amount.String())
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "scope to one account id")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (DD.MM.YYYY or YYYY-MM-DD)")
	return cmd
}
