package service

import (
	"context"
	"database/sql"

	"github.com/jpcastanov/siga-api/internal/store"
)

// TxRunner executes a function inside a database transaction. Services
// that write multiple entities atomically depend on this instead of a
// concrete *sql.DB so tests can substitute an in-memory runner.
type TxRunner func(ctx context.Context, fn store.TxFn) error

// NewTxRunner adapts a database handle into a TxRunner backed by
// store.RunInTransaction.
func NewTxRunner(db *sql.DB) TxRunner {
	return func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, db, fn)
	}
}
