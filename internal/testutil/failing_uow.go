package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/projectdesk/internal/db"
)

// FailingUoW runs real transactions but makes the first write whose SQL
// contains Match return Err, so the surrounding transaction rolls back at a
// chosen statement. Reads are never intercepted.
type FailingUoW struct {
	DB    *sql.DB
	Match string
	Err   error

	fired atomic.Bool
}

// Fired reports whether the injected error was returned.
func (u *FailingUoW) Fired() bool {
	return u.fired.Load()
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) && f.uow.fired.CompareAndSwap(false, true) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
