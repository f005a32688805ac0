package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and bom.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ bom.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInventory inicia una transacción, ejecuta fn con el repo de inventario atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(repo repository.InventoryRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx)); err != nil {
		return err
	}
	return commit(ctx, tx)
}

// RunTemplates inicia una transacción para crear una plantilla con sus partes (todo o nada).
func (r *TxRunner) RunTemplates(ctx context.Context, fn func(repo repository.TemplateRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTemplateRepository(tx)); err != nil {
		return err
	}
	return commit(ctx, tx)
}

type committer interface {
	Commit(ctx context.Context) error
}

// commit clasifica el fallo igual que Begin: una conexión caída en el Commit es ErrConnection.
func commit(ctx context.Context, tx committer) error {
	if err := tx.Commit(ctx); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}
