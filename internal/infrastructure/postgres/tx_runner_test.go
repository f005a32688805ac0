package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
)

type fakeCommitter struct{ err error }

func (f fakeCommitter) Commit(context.Context) error { return f.err }

func TestCommit_ClasificaErrores(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, commit(ctx, fakeCommitter{}))

	dropped := commit(ctx, fakeCommitter{err: &net.OpError{Op: "write", Net: "tcp", Err: errors.New("broken pipe")}})
	assert.ErrorIs(t, dropped, domain.ErrConnection)
	assert.ErrorContains(t, dropped, "commit transaction")

	admin := commit(ctx, fakeCommitter{err: &pgconn.PgError{Code: "08006"}})
	assert.ErrorIs(t, admin, domain.ErrConnection)

	dup := commit(ctx, fakeCommitter{err: &pgconn.PgError{Code: "23505"}})
	assert.ErrorIs(t, dup, domain.ErrDuplicateKey)

	deferred := commit(ctx, fakeCommitter{err: &pgconn.PgError{Code: "23514"}})
	assert.Nil(t, domain.Kind(deferred))
	assert.ErrorContains(t, deferred, "commit transaction")
}
