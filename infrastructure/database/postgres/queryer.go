package postgres

import (
	"context"
	"database/sql"
)

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const lockKeyQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

// LockKey serializa escritores concorrentes da mesma chave lógica até o fim da transação.
// Cobre também o caso em que a linha ainda não existe e o SELECT ... FOR UPDATE não trava nada.
func LockKey(ctx context.Context, q Queryer, key string) error {
	_, err := q.ExecContext(ctx, lockKeyQuery, key)
	return err
}
