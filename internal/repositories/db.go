package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the querier contract repositories run against. *pgxpool.Pool,
// pgx.Tx and the pgxmock pool all satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDB additionally opens transactions, for the operations that must run
// as a single atomic unit.
type TxDB interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}
