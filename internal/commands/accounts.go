package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountsListCommand(a))
	cmd.AddCommand(newAccountsAddCommand(a))
	cmd.AddCommand(newAccountsEditCommand(a))
	cmd.AddCommand(newAccountsDeleteCommand(a))
	return cmd
}

func newAccountsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := a.store.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNUMBER\tNOTES")
			for _, acct := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acct.ID, acct.Name, acct.Number, acct.Notes)
			}
			return w.Flush()
		},
	}
}

func newAccountsAddCommand(a *app) *cobra.Command {
	var number, notes string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.InsertAccount(cmd.Context(), args[0], number, notes)
			if err != nil {
				return err
			}
			fmt.Printf("Account %d created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	return cmd
}

func newAccountsEditCommand(a *app) *cobra.Command {
	var name, number, notes string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.UpdateAccount(cmd.Context(), id, name, number, notes)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAccountsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and everything linked to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.DeleteAccount(cmd.Context(), id)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
