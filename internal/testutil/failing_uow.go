package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/tempo/internal/db"
)

// FailOnNthExec returns a UnitOfWork whose transactions fail the nth
// ExecContext call (counting from 1) with err, simulating a store that drops
// mid-write. Reads pass through. The transaction is rolled back as usual.
func FailOnNthExec(database *sql.DB, n int32, err error) db.UnitOfWork {
	inner := db.NewSQLiteUnitOfWork(database)
	return db.UnitOfWorkFunc(func(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
		return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return fn(ctx, &failingExec{DBTX: tx, failOn: n, err: err})
		})
	})
}

type failingExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
