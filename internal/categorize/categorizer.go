package categorize

import (
	"context"
	"fmt"
	"time"

	"github.com/hakdo/pengesjekk/internal/core"
	applog "github.com/hakdo/pengesjekk/internal/log"
)

// Store is the slice of the ledger store the categorizer needs.
type Store interface {
	ListUncategorized(ctx context.Context, accountID *int64) ([]core.Transaction, error)
	UpdateCategory(ctx context.Context, id int64, category core.Category) error
}

// Categorizer runs the one-call-per-transaction categorization loop. It
// is idempotent and resumable: transactions that already carry a
// category are never sent to the model again.
type Categorizer struct {
	store     Store
	suggester Suggester
	delay     time.Duration // pause between calls, respects the API rate limit
	timeout   time.Duration // per-call bound so a hung call cannot block forever
	log       *applog.Logger
}

// Result counts the outcome of one categorization run.
type Result struct {
	Categorized int
	Failed      int
}

func New(store Store, suggester Suggester, delay, timeout time.Duration) *Categorizer {
	return &Categorizer{
		store:     store,
		suggester: suggester,
		delay:     delay,
		timeout:   timeout,
		log:       applog.ForComponent(applog.ComponentCategorize),
	}
}

// Run categorizes every uncategorized transaction, optionally scoped to
// one account. A failed suggestion skips the transaction and continues;
// cancelling the context stops the loop between calls.
func (c *Categorizer) Run(ctx context.Context, accountID *int64) (Result, error) {
	txs, err := c.store.ListUncategorized(ctx, accountID)
	if err != nil {
		return Result{}, fmt.Errorf("list uncategorized: %w", err)
	}

	var res Result
	for i, t := range txs {
		if !t.Category.IsEmpty() {
			continue
		}
		if i > 0 {
			if err := c.wait(ctx); err != nil {
				return res, err
			}
		}

		label, err := c.suggest(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			c.log.WarnContext(ctx, "Category suggestion failed",
				"transaction_id", t.ID, "error", err)
			res.Failed++
			continue
		}

		category := core.Category(label)
		if t.Direction == core.Income {
			category = core.CoerceIncome(label)
			if string(category) != label {
				c.log.InfoContext(ctx, "Coerced income category",
					"transaction_id", t.ID, "suggested", label, "category", string(category))
			}
		}

		if err := c.store.UpdateCategory(ctx, t.ID, category); err != nil {
			return res, fmt.Errorf("update category for transaction %d: %w", t.ID, err)
		}
		c.log.InfoContext(ctx, "Transaction categorized",
			"transaction_id", t.ID, "category", string(category))
		res.Categorized++
	}
	return res, nil
}

func (c *Categorizer) suggest(ctx context.Context, t core.Transaction) (string, error) {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.suggester.Suggest(callCtx, t.Amount, t.Description)
}

func (c *Categorizer) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
