// Package storage persists accounts, transactions and budgets in a local
// SQLite database. Every exported method is a single unit of durability;
// no cross-operation transactions are exposed to callers.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hakdo/pengesjekk/internal/core"
	applog "github.com/hakdo/pengesjekk/internal/log"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by id misses.
var ErrNotFound = errors.New("not found")

// DefaultAccountName is created when the store holds no accounts.
const DefaultAccountName = "Standardkonto"

type SQLiteRepository struct {
	db  *sql.DB
	log *applog.Logger
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		log: applog.ForComponent(applog.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// EnsureDefaultAccount creates the default account when the accounts
// table is empty, so the app is usable right after first start.
func (r *SQLiteRepository) EnsureDefaultAccount(ctx context.Context) error {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := r.InsertAccount(ctx, DefaultAccountName, "", ""); err != nil {
		return err
	}
	r.log.InfoContext(ctx, "Default account created", "name", DefaultAccountName)
	return nil
}

func (r *SQLiteRepository) InsertAccount(ctx context.Context, name, number, notes string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, account_number, notes) VALUES (?, ?, ?)`,
		name, number, notes)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert account id: %w", err)
	}
	r.log.InfoContext(ctx, "Account created", "id", id, "name", name)
	return id, nil
}

func (r *SQLiteRepository) UpdateAccount(ctx context.Context, id int64, name, number, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, account_number = ?, notes = ? WHERE id = ?`,
		name, number, notes, id)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update account %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAccount removes the account together with its transactions and
// budget rows in one SQL transaction, so nothing is left orphaned.
func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("delete account transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM budget WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("delete account budgets: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete account %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account: %w", err)
	}
	r.log.InfoContext(ctx, "Account deleted", "id", id)
	return nil
}

// ListAccounts returns all accounts ordered by id ascending.
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, account_number, notes FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Number, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// InsertTransactions persists a batch of drafts for the account. A draft
// whose fingerprint already exists anywhere in the store is skipped, so
// re-importing a statement is idempotent. The whole batch commits as one
// unit; the number of newly inserted rows is returned.
func (r *SQLiteRepository) InsertTransactions(ctx context.Context, accountID int64, drafts []core.Draft) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert transactions: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("invalid draft %q: %w", d.Description, err)
		}

		fingerprint := d.Fingerprint()
		var existing int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM transactions WHERE fingerprint = ?`, fingerprint).Scan(&existing)
		switch {
		case err == nil:
			r.log.DebugContext(ctx, "Transaction skipped, already exists",
				"description", d.Description, "date", d.Date.String())
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return 0, fmt.Errorf("check fingerprint: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (account_id, tx_date, description, amount_cents, direction, category, fingerprint)
			 VALUES (?, ?, ?, ?, ?, '', ?)`,
			accountID, d.Date.ISO(), d.Description, d.Amount.Cents, string(d.Direction), fingerprint); err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert transactions: %w", err)
	}
	r.log.InfoContext(ctx, "Transactions inserted",
		"account_id", accountID, "batch", len(drafts), "inserted", inserted)
	return inserted, nil
}

const transactionColumns = `id, account_id, tx_date, description, amount_cents, direction, category, fingerprint`

func scanTransaction(scan func(dest ...any) error) (core.Transaction, error) {
	var (
		t       core.Transaction
		dateISO string
	)
	if err := scan(&t.ID, &t.AccountID, &dateISO, &t.Description,
		&t.Amount.Cents, &t.Direction, &t.Category, &t.Fingerprint); err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(dateISO)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", dateISO, err)
	}
	t.Date = date
	return t, nil
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ListTransactions returns transactions in natural storage order,
// optionally scoped to one account.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, accountID *int64) ([]core.Transaction, error) {
	if accountID != nil {
		return r.queryTransactions(ctx,
			`SELECT `+transactionColumns+` FROM transactions WHERE account_id = ? ORDER BY id`, *accountID)
	}
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
}

// ListUncategorized returns transactions whose category is still empty.
func (r *SQLiteRepository) ListUncategorized(ctx context.Context, accountID *int64) ([]core.Transaction, error) {
	if accountID != nil {
		return r.queryTransactions(ctx,
			`SELECT `+transactionColumns+` FROM transactions WHERE category = '' AND account_id = ? ORDER BY id`, *accountID)
	}
	return r.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE category = '' ORDER BY id`)
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// UpdateCategory stores the category trimmed; a whitespace-only value
// persists as empty, which keeps the transaction uncategorized.
func (r *SQLiteRepository) UpdateCategory(ctx context.Context, id int64, category core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`, strings.TrimSpace(string(category)), id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update category for transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

// BulkUpdateCategory assigns one category to many transactions at once.
func (r *SQLiteRepository) BulkUpdateCategory(ctx context.Context, ids []int64, category core.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk update: %w", err)
	}
	defer tx.Rollback()

	trimmed := strings.TrimSpace(string(category))
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = ? WHERE id = ?`, trimmed, id); err != nil {
			return fmt.Errorf("bulk update category for transaction %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk update: %w", err)
	}
	r.log.InfoContext(ctx, "Category updated in bulk", "count", len(ids), "category", trimmed)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

// FilterParams are conjunctive server-side transaction filters. Nil
// fields are disabled.
type FilterParams struct {
	Month     *int // 1-12, month of year
	Category  *core.Category
	AccountID *int64
}

// FilterTransactions filters by month of year, exact category and
// account, all conjunctive.
func (r *SQLiteRepository) FilterTransactions(ctx context.Context, p FilterParams) ([]core.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any
	if p.AccountID != nil {
		query += ` AND account_id = ?`
		args = append(args, *p.AccountID)
	}
	if p.Month != nil {
		query += ` AND strftime('%m', tx_date) = ?`
		args = append(args, fmt.Sprintf("%02d", *p.Month))
	}
	if p.Category != nil {
		query += ` AND category = ?`
		args = append(args, string(*p.Category))
	}
	query += ` ORDER BY id`
	return r.queryTransactions(ctx, query, args...)
}

// SaveBudget replaces the full row set for (accountID, name) with the
// given lines, atomically.
func (r *SQLiteRepository) SaveBudget(ctx context.Context, accountID int64, name string, lines []core.BudgetLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save budget: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM budget WHERE account_id = ? AND budget_name = ?`, accountID, name); err != nil {
		return fmt.Errorf("clear budget: %w", err)
	}
	for _, l := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budget (account_id, budget_name, category, budget_amount_cents, actual_amount_cents)
			 VALUES (?, ?, ?, ?, ?)`,
			accountID, name, l.Category, l.Planned.Cents, l.Actual.Cents); err != nil {
			return fmt.Errorf("insert budget line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save budget: %w", err)
	}
	r.log.InfoContext(ctx, "Budget saved", "account_id", accountID, "name", name, "lines", len(lines))
	return nil
}

// ListBudgets returns the account's budgets keyed by budget name, lines
// in insertion order.
func (r *SQLiteRepository) ListBudgets(ctx context.Context, accountID int64) (map[string][]core.BudgetLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT budget_name, category, budget_amount_cents, actual_amount_cents
		 FROM budget WHERE account_id = ? ORDER BY budget_name, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[string][]core.BudgetLine)
	for rows.Next() {
		var (
			name string
			l    core.BudgetLine
		)
		if err := rows.Scan(&name, &l.Category, &l.Planned.Cents, &l.Actual.Cents); err != nil {
			return nil, fmt.Errorf("scan budget line: %w", err)
		}
		budgets[name] = append(budgets[name], l)
	}
	return budgets, rows.Err()
}
