package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/core"
	"github.com/hakdo/pengesjekk/internal/services"
)

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Browse and edit transactions",
	}
	cmd.AddCommand(newTxListCommand(a))
	cmd.AddCommand(newTxAddCommand(a))
	cmd.AddCommand(newTxSetCategoryCommand(a))
	cmd.AddCommand(newTxDeleteCommand(a))
	return cmd
}

func newTxAddCommand(a *app) *cobra.Command {
	var (
		accountID int64
		dateStr   string
		amountStr string
		direction string
	)
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := core.ParseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q", dateStr)
			}
			amount, err := core.ParseMoney(amountStr)
			if err != nil {
				return fmt.Errorf("invalid --amount %q", amountStr)
			}
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			if dir == core.DirectionAll {
				return fmt.Errorf("--direction must be Income or Expense")
			}

			draft := core.Draft{
				Date:        date,
				Description: args[0],
				Amount:      amount.Abs(),
				Direction:   dir,
			}
			svc := services.NewImportService(a.store)
			inserted, err := svc.Drafts(cmd.Context(), accountID, []core.Draft{draft})
			if err != nil {
				return err
			}
			if inserted == 0 {
				fmt.Println("Duplicate of an existing transaction, nothing added")
				return nil
			}
			fmt.Printf("Added %s %s %s\n", date.String(), draft.Description, draft.Amount.String())
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (DD.MM.YYYY or YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount, e.g. 123.45 (required)")
	cmd.Flags().StringVar(&direction, "direction", "", "Income or Expense (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}

func newTxListCommand(a *app) *cobra.Command {
	var (
		accountID int64
		page      int
		size      int
		query     string
		fromStr   string
		toStr     string
		direction string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with filters and pagination",
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
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}

			txs = core.FilterText(txs, query)
			txs = core.FilterDateRange(txs, from, to)
			txs = core.FilterDirection(txs, dir)

			// Newest first, matching the original transaction view.
			sort.SliceStable(txs, func(i, j int) bool {
				return txs[i].Date.After(txs[j].Date.Time)
			})

			if size <= 0 {
				size = a.cfg.PageSize
			}
			pageTxs := core.Paginate(txs, page, size)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tDIRECTION\tCATEGORY")
			for _, t := range pageTxs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.String(), t.Description, t.Amount.String(), t.Direction, t.Category)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			income, expense := core.Totals(txs)
			fmt.Printf("Page %d | %d transactions, income %s, expenses %s\n",
				page, len(txs), income.String(), expense.String())
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "scope to one account id")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size (default from config)")
	cmd.Flags().StringVar(&query, "query", "", "text filter; prefix with kat: to match categories")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&direction, "direction", "All", "Income, Expense or All")
	return cmd
}

func newTxSetCategoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-category <id> <category>",
		Short: "Set a transaction's category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.UpdateCategory(cmd.Context(), id, core.Category(args[1]))
		},
	}
}

func newTxDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.DeleteTransaction(cmd.Context(), id)
		},
	}
}

// dateRange parses the from/to flags, falling back to the current year
// when both are empty.
func dateRange(fromStr, toStr string) (core.Date, core.Date, error) {
	if fromStr == "" && toStr == "" {
		from, to := core.DefaultRange(time.Now())
		return from, to, nil
	}
	if fromStr == "" || toStr == "" {
		return core.Date{}, core.Date{}, fmt.Errorf("both --from and --to are required when filtering by date")
	}
	from, err := core.ParseDate(fromStr)
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("invalid --from date %q", fromStr)
	}
	to, err := core.ParseDate(toStr)
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("invalid --to date %q", toStr)
	}
	return from, to, nil
}

func parseDirection(s string) (core.Direction, error) {
	switch core.Direction(s) {
	case core.Income, core.Expense, core.DirectionAll:
		return core.Direction(s), nil
	case "":
		return core.DirectionAll, nil
	}
	return "", fmt.Errorf("invalid direction %q: use Income, Expense or All", s)
}
