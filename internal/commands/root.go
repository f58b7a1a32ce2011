// Package commands wires the CLI surface on top of the store, importer
// and categorizer.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/hakdo/pengesjekk/internal/cli"
	"github.com/hakdo/pengesjekk/internal/config"
	"github.com/hakdo/pengesjekk/internal/storage"
)

// app holds the shared state every subcommand needs. It replaces the
// ambient globals the operations would otherwise reach for.
type app struct {
	cfg   *config.Config
	store *storage.SQLiteRepository
}

// NewRootCommand creates the root CLI command with all subcommands
// registered. The store is opened before any subcommand runs and closed
// after it finishes.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var dev bool

	rootCmd := &cobra.Command{
		Use:   "pengesjekk",
		Short: "Local personal finance tracker",
		Long: "Pengesjekk imports bank statement files into a local SQLite ledger,\n" +
			"filters and summarizes transactions, builds per-category budgets and\n" +
			"auto-suggests categories for uncategorized transactions.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetupLogger(dev)
			cli.LoadEnvFile()

			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			store, err := cli.InitSQLite(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.store = store
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.store != nil {
				_ = a.store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&dev, "dev", false, "development mode (debug logging)")

	rootCmd.AddCommand(newAccountsCommand(a))
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newTxCommand(a))
	rootCmd.AddCommand(newCategorizeCommand(a))
	rootCmd.AddCommand(newBudgetCommand(a))
	rootCmd.AddCommand(newReportCommand(a))

	return rootCmd
}
