package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hakdo/pengesjekk/internal/core"
	applog "github.com/hakdo/pengesjekk/internal/log"
	"github.com/hakdo/pengesjekk/internal/storage"
)

// ErrNoDateRange is surfaced when budget generation is requested without
// a valid date range; nothing is mutated in that case.
var ErrNoDateRange = errors.New("no date range selected")

// BudgetService generates budgets from transaction history and persists
// named budgets.
type BudgetService struct {
	store *storage.SQLiteRepository
	log   *applog.Logger
}

func NewBudgetService(store *storage.SQLiteRepository) *BudgetService {
	return &BudgetService{
		store: store,
		log:   applog.ForComponent(applog.ComponentApp),
	}
}

// Generate aggregates the account's transactions within [from, to] into
// budget lines. The result is not persisted; call Save for that.
func (s *BudgetService) Generate(ctx context.Context, accountID int64, from, to core.Date) ([]core.BudgetLine, error) {
	if from.IsZero() || to.IsZero() {
		return nil, ErrNoDateRange
	}

	txs, err := s.store.ListTransactions(ctx, &accountID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	lines := core.GenerateBudget(txs, from, to)
	s.log.InfoContext(ctx, "Budget generated",
		"account_id", accountID,
		"from", from.String(),
		"to", to.String(),
		"lines", len(lines),
		"balance", core.BudgetBalance(lines).String())
	return lines, nil
}

// Save replaces the named budget's rows for the account.
func (s *BudgetService) Save(ctx context.Context, accountID int64, name string, lines []core.BudgetLine) error {
	if name == "" {
		return errors.New("budget name is required")
	}
	return s.store.SaveBudget(ctx, accountID, name, lines)
}

// List returns the account's saved budgets keyed by name.
func (s *BudgetService) List(ctx context.Context, accountID int64) (map[string][]core.BudgetLine, error) {
	return s.store.ListBudgets(ctx, accountID)
}
