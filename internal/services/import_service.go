// Package services orchestrates the import, budget and query flows on
// top of the SQLite store.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hakdo/pengesjekk/internal/core"
	"github.com/hakdo/pengesjekk/internal/importer"
	applog "github.com/hakdo/pengesjekk/internal/log"
	"github.com/hakdo/pengesjekk/internal/storage"
)

// ImportService reads statement files and hands the draft batch to the
// store in one call.
type ImportService struct {
	store *storage.SQLiteRepository
	log   *applog.Logger
}

// ImportResult summarizes one statement import.
type ImportResult struct {
	Parsed   int // drafts parsed from the file
	Inserted int // rows actually persisted (fingerprint dedup skips the rest)
	Skipped  []importer.RowError
}

func NewImportService(store *storage.SQLiteRepository) *ImportService {
	return &ImportService{
		store: store,
		log:   applog.ForComponent(applog.ComponentImporter),
	}
}

// ImportFile imports a statement file into the account, choosing the
// reader by file extension (.xlsx/.xls spreadsheet, .csv delimited text).
func (s *ImportService) ImportFile(ctx context.Context, accountID int64, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	var table importer.Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		table, err = importer.ReadCSV(f)
	case ".xlsx", ".xls":
		table, err = importer.ReadXLSX(f)
	default:
		return ImportResult{}, fmt.Errorf("unsupported statement format %q", filepath.Ext(path))
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("read statement %s: %w", filepath.Base(path), err)
	}

	drafts, skipped, err := importer.ParseTable(table)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse statement %s: %w", filepath.Base(path), err)
	}
	for _, rowErr := range skipped {
		s.log.WarnContext(ctx, "Statement row skipped",
			"file", filepath.Base(path), "row", rowErr.Row, "error", rowErr.Err)
	}

	inserted, err := s.store.InsertTransactions(ctx, accountID, drafts)
	if err != nil {
		return ImportResult{}, fmt.Errorf("insert transactions: %w", err)
	}

	s.log.InfoContext(ctx, "Statement imported",
		"file", filepath.Base(path),
		"account_id", accountID,
		"parsed", len(drafts),
		"inserted", inserted,
		"skipped_rows", len(skipped))

	return ImportResult{Parsed: len(drafts), Inserted: inserted, Skipped: skipped}, nil
}

// Drafts is a convenience for direct user entry: validates and inserts a
// hand-built batch through the same deduplicated path.
func (s *ImportService) Drafts(ctx context.Context, accountID int64, drafts []core.Draft) (int, error) {
	return s.store.InsertTransactions(ctx, accountID, drafts)
}
