package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("op", nil))

	dup := classify("insert", &pgconn.PgError{Code: "23505", Message: "duplicate key"})
	assert.ErrorIs(t, dup, domain.ErrDuplicateKey)

	conn := classify("ping", &pgconn.PgError{Code: "08006"})
	assert.ErrorIs(t, conn, domain.ErrConnection)

	timeout := classify("select", fmt.Errorf("wrap: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, timeout, domain.ErrConnection)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)

	other := classify("update", &pgconn.PgError{Code: "23514", Message: "check violation"})
	assert.Nil(t, domain.Kind(other))
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(other, &pgErr))
}
