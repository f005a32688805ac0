package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/memory"
)

func newStoreWithA(t *testing.T, opts ...memory.Option) *memory.Store {
	t.Helper()
	s := memory.NewStore(opts...)
	uc := inventory.NewInventoryUseCase(s.Inventory(), nil)
	_, err := uc.Create(context.Background(), "seed", dto.CreateInventoryItemRequest{
		PartNumber:    "A",
		ComponentName: "Resistencia 10k",
		CurrentStock:  5,
		MinStock:      10,
		UnitCost:      decimal.RequireFromString("1.50"),
	})
	require.NoError(t, err)
	return s
}

func TestSetStock_AmbasEstrategiasDejanElMismoEstado(t *testing.T) {
	for _, strategy := range []string{inventory.StrategyProcedure, inventory.StrategyDirect} {
		t.Run(strategy, func(t *testing.T) {
			ctx := context.Background()
			s := newStoreWithA(t)
			updater, err := inventory.SelectStockUpdater(ctx, strategy, s.Inventory(), s.TxRunner(), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, strategy, updater.Path())

			rec := audit.NewRecorder(s.Audit(), audit.Config{}, zerolog.Nop(), nil)
			r := inventory.NewStockReconciler(updater, rec, nil, zerolog.Nop())

			rows, err := r.SetStock(ctx, "A", 12, "user-1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), rows)

			it, err := s.Inventory().GetByPartNumber(ctx, "A")
			require.NoError(t, err)
			assert.Equal(t, 12, it.CurrentStock)
			assert.True(t, it.InventoryValue.Equal(decimal.NewFromInt(12).Mul(it.UnitCost)), "valor %s", it.InventoryValue)
			assert.False(t, it.LastUpdated.IsZero())

			rec.Wait()
			entries := s.Audit().Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, entity.AuditActionUpdateStock, entries[0].Action)
			assert.Equal(t, "A", entries[0].EntityID)
			assert.Equal(t, "user-1", entries[0].ActorID)
		})
	}
}

func TestSetStock_Errores(t *testing.T) {
	for _, strategy := range []string{inventory.StrategyProcedure, inventory.StrategyDirect} {
		t.Run(strategy, func(t *testing.T) {
			ctx := context.Background()
			s := newStoreWithA(t)
			updater, err := inventory.SelectStockUpdater(ctx, strategy, s.Inventory(), s.TxRunner(), zerolog.Nop())
			require.NoError(t, err)
			r := inventory.NewStockReconciler(updater, nil, nil, zerolog.Nop())

			_, err = r.SetStock(ctx, "NO-EXISTE", 3, "u")
			assert.ErrorIs(t, err, domain.ErrNotFound)

			_, err = r.SetStock(ctx, "A", -1, "u")
			assert.ErrorIs(t, err, domain.ErrValidation)

			_, err = r.SetStock(ctx, "A", entity.MaxQuantity+1, "u")
			var ve *dto.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, "new_stock")

			_, err = r.SetStock(ctx, "  ", 1, "u")
			assert.ErrorIs(t, err, domain.ErrValidation)

			it, err := s.Inventory().GetByPartNumber(ctx, "A")
			require.NoError(t, err)
			assert.Equal(t, 5, it.CurrentStock, "un rechazo no debe escribir")
		})
	}
}

func TestSetStock_CeroEsValido(t *testing.T) {
	ctx := context.Background()
	s := newStoreWithA(t)
	r := inventory.NewStockReconciler(inventory.NewAtomicUpdater(s.Inventory()), nil, nil, zerolog.Nop())

	_, err := r.SetStock(ctx, "A", 0, "u")
	require.NoError(t, err)
	it, _ := s.Inventory().GetByPartNumber(ctx, "A")
	assert.Equal(t, 0, it.CurrentStock)

	_, err = r.SetStock(ctx, "A", entity.MaxQuantity, "u")
	require.NoError(t, err)
	it, _ = s.Inventory().GetByPartNumber(ctx, "A")
	assert.Equal(t, entity.MaxQuantity, it.CurrentStock)
	assert.True(t, it.InventoryValue.IsZero())
}

func TestSelectStockUpdater(t *testing.T) {
	ctx := context.Background()
	withProc := memory.NewStore()
	noProc := memory.NewStore(memory.WithoutProcedure())

	tests := []struct {
		name     string
		store    *memory.Store
		strategy string
		wantPath string
		wantErr  bool
	}{
		{"auto con procedimiento", withProc, "auto", inventory.StrategyProcedure, false},
		{"vacío equivale a auto", withProc, "", inventory.StrategyProcedure, false},
		{"auto sin procedimiento", noProc, "auto", inventory.StrategyDirect, false},
		{"direct forzado", withProc, "direct", inventory.StrategyDirect, false},
		{"procedure exige el procedimiento", noProc, "procedure", "", true},
		{"estrategia desconocida", withProc, "retry", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := inventory.SelectStockUpdater(ctx, tt.strategy, tt.store.Inventory(), tt.store.TxRunner(), zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, u.Path())
		})
	}
}
