package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hakdo/pengesjekk/internal/core"
	"github.com/hakdo/pengesjekk/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	store, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// Manual entry goes through the same deduplicated path as statement
// import: the second identical draft is a no-op.
func TestDraftsDedup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	accountID, err := store.InsertAccount(ctx, "Konto", "", "")
	if err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}

	draft := core.Draft{
		Date:        core.NewDate(2024, 3, 1),
		Description: "Coffee",
		Amount:      core.Money{Cents: 4500},
		Direction:   core.Expense,
	}
	svc := NewImportService(store)

	inserted, err := svc.Drafts(ctx, accountID, []core.Draft{draft})
	if err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("first entry inserted %d, want 1", inserted)
	}

	inserted, err = svc.Drafts(ctx, accountID, []core.Draft{draft})
	if err != nil {
		t.Fatalf("Drafts (repeat): %v", err)
	}
	if inserted != 0 {
		t.Fatalf("repeated entry inserted %d, want 0", inserted)
	}

	txs, err := store.ListTransactions(ctx, nil)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("store holds %d transactions, want 1", len(txs))
	}
}

// A manual entry that duplicates an already imported statement row is
// suppressed by the shared fingerprint.
func TestDraftsDedupAgainstImportedRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	accountID, err := store.InsertAccount(ctx, "Konto", "", "")
	if err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}

	imported := core.Draft{
		Date:        core.NewDate(2024, 1, 5),
		Description: "Husleie",
		Amount:      core.Money{Cents: 120000},
		Direction:   core.Expense,
	}
	if _, err := store.InsertTransactions(ctx, accountID, []core.Draft{imported}); err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}

	inserted, err := NewImportService(store).Drafts(ctx, accountID, []core.Draft{imported})
	if err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("manual duplicate inserted %d, want 0", inserted)
	}
}

func TestImportFileCSV(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	accountID, err := store.InsertAccount(ctx, "Konto", "", "")
	if err != nil {
		t.Fatalf("InsertAccount: %v", err)
	}

	src := "Dato;Beskrivelse;Inn;Ut\n" +
		"05.01.2024;Husleie;;1200,00\n" +
		"25.01.2024;Arbeidsgiver AS;42000,50;\n" +
		"26.01.2024;Bad row;;\n"
	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write statement: %v", err)
	}

	res, err := NewImportService(store).ImportFile(ctx, accountID, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if res.Parsed != 2 || res.Inserted != 2 || len(res.Skipped) != 1 {
		t.Fatalf("result = %+v, want 2 parsed, 2 inserted, 1 skipped", res)
	}

	txs, err := store.ListTransactions(ctx, &accountID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("store holds %d transactions, want 2", len(txs))
	}
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := NewImportService(store).ImportFile(context.Background(), 1, path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
