package pgxstorage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type TransactionsManager struct {
	storage *DBStorage
}

func NewTransactionsManager(storage *DBStorage) *TransactionsManager {
	return &TransactionsManager{
		storage: storage,
	}
}

// DoWithTransaction runs f with a context carrying a new transaction. Storage
// calls made with that context join it. The transaction is committed when f
// succeeds and rolled back otherwise.
func (tm *TransactionsManager) DoWithTransaction(
	ctx context.Context,
	f func(ctx context.Context) error,
) error {
	if _, err := getTransaction(ctx); err == nil {
		return f(ctx)
	}
	ctxWithTransaction, tx, err := tm.storage.withTransaction(ctx)
	if err != nil {
		return err
	}
	if err := f(ctxWithTransaction); err != nil {
		return rollback(tx, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return rollback(tx, fmt.Errorf("transaction commit failed: %w", err))
	}
	return nil
}

func rollback(tx pgx.Tx, cause error) error {
	if err := tx.Rollback(context.Background()); err != nil {
		return fmt.Errorf("transaction rollback failed: %w, rollback caused by %w", err, cause)
	}
	return cause
}
