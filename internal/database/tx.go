package database

import (
	"context"
	"fmt"

	"vn-server/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgTransactor implements interfaces.Transactor on top of a pgx pool.
type PgTransactor struct {
	db TxBeginner
}

var _ interfaces.Transactor = (*PgTransactor)(nil)

// NewPgTransactor creates a transactor.
func NewPgTransactor(db TxBeginner) *PgTransactor {
	return &PgTransactor{db: db}
}

// WithTx commits on success, rolls back on error or panic.
func (t *PgTransactor) WithTx(ctx context.Context, fn func(tx interfaces.DBTX) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	// Паника внутри fn откатывает транзакцию и пробрасывается дальше
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.Background())
			panic(r)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}
