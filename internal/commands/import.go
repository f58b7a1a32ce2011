package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/services"
)

func newImportCommand(a *app) *cobra.Command {
	var accountID int64
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement (.xlsx or semicolon-delimited .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewImportService(a.store)
			res, err := svc.ImportFile(cmd.Context(), accountID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Parsed %d rows, inserted %d new transactions, skipped %d bad rows\n",
				res.Parsed, res.Inserted, len(res.Skipped))
			for _, rowErr := range res.Skipped {
				fmt.Printf("  skipped %v\n", rowErr)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id to import into (required)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
