package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so repositories
// run unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs fn inside one database transaction: committed when fn returns nil,
// rolled back otherwise.
//
//go:generate mockery --name Transactor --output ./mocks --outpkg mocks --case=underscore
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx DBTX) error) error
}
