package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/core"
	"github.com/hakdo/pengesjekk/internal/services"
)

func newBudgetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Generate and manage budgets",
	}
	cmd.AddCommand(newBudgetGenerateCommand(a))
	cmd.AddCommand(newBudgetListCommand(a))
	return cmd
}

func newBudgetGenerateCommand(a *app) *cobra.Command {
	var (
		accountID int64
		fromStr   string
		toStr     string
		name      string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a budget from a date range of transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(fromStr, toStr)
			if err != nil {
				return err
			}

			svc := services.NewBudgetService(a.store)
			lines, err := svc.Generate(cmd.Context(), accountID, from, to)
			if err != nil {
				return err
			}
			printBudget(lines)

			if name != "" {
				if err := svc.Save(cmd.Context(), accountID, name, lines); err != nil {
					return err
				}
				fmt.Printf("Budget %q saved\n", name)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id (required)")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (DD.MM.YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&name, "name", "", "save the generated budget under this name")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newBudgetListCommand(a *app) *cobra.Command {
	var accountID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewBudgetService(a.store)
			budgets, err := svc.List(cmd.Context(), accountID)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(budgets))
			for name := range budgets {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Printf("Budget: %s\n", name)
				printBudget(budgets[name])
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func printBudget(lines []core.BudgetLine) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tINCOME\tEXPENSE")
	for _, l := range lines {
		income, expense := "", ""
		if !l.Planned.IsZero() {
			income = l.Planned.String()
		}
		if !l.Actual.IsZero() {
			expense = l.Actual.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Category, income, expense)
	}
	fmt.Fprintf(w, "%s\t\t%s\n", core.TotalRowLabel, core.BudgetBalance(lines).String())
	_ = w.Flush()
}
