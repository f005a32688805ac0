package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

func seedItem(t *testing.T, s *Store, pn string, stock int, cost string) {
	t.Helper()
	it := &entity.InventoryItem{PartNumber: pn, ComponentName: pn, UnitCost: decimal.RequireFromString(cost), Status: entity.InventoryStatusInStock}
	it.ApplyStock(stock, time.Now())
	require.NoError(t, s.Inventory().Create(context.Background(), it))
}

func TestInventoryRepo_CreateDuplicadoYLecturas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "B", 1, "1.00")
	seedItem(t, s, "A", 5, "1.50")

	err := s.Inventory().Create(ctx, &entity.InventoryItem{PartNumber: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	all, err := s.Inventory().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].PartNumber)

	missing, err := s.Inventory().GetByPartNumber(ctx, "Z")
	require.NoError(t, err)
	assert.Nil(t, missing)

	many, err := s.Inventory().GetMany(ctx, []string{"A", "Z"})
	require.NoError(t, err)
	assert.Len(t, many, 1)
	assert.Equal(t, 5, many["A"].CurrentStock)
}

func TestInventoryRepo_CallUpdateStock(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	seedItem(t, s, "A", 5, "1.50")

	rows, err := s.Inventory().CallUpdateStock(ctx, "A", 12, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	it, err := s.Inventory().GetByPartNumber(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 12, it.CurrentStock)
	assert.True(t, it.InventoryValue.Equal(decimal.RequireFromString("18.00")))
	assert.Equal(t, fixed, it.LastUpdated)

	rows, err = s.Inventory().CallUpdateStock(ctx, "Z", 1, "u")
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestInventoryRepo_SinProcedimiento(t *testing.T) {
	s := NewStore(WithoutProcedure())
	ok, err := s.Inventory().HasUpdateStockProcedure(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunInventory_RevierteSiFalla(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "A", 5, "1.00")

	boom := errors.New("boom")
	err := s.TxRunner().RunInventory(ctx, func(repo repository.InventoryRepository) error {
		it, err := repo.GetForUpdate(ctx, "A")
		require.NoError(t, err)
		it.ApplyStock(99, time.Now())
		_, err = repo.UpdateStock(ctx, it)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := s.Inventory().GetByPartNumber(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 5, it.CurrentStock)
}

func TestRunTemplates_AplicaTodoONada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	err := s.TxRunner().RunTemplates(ctx, func(repo repository.TemplateRepository) error {
		require.NoError(t, repo.InsertHeader(ctx, &entity.BOMTemplate{BOMID: "bom-x", UpdatedAt: now}))
		require.NoError(t, repo.InsertPart(ctx, &entity.BOMTemplatePart{BOMID: "bom-x", PartNumber: "P1"}))

		// Dentro de la unidad la cabecera es visible; fuera todavía no.
		h, err := repo.GetHeader(ctx, "bom-x")
		require.NoError(t, err)
		require.NotNil(t, h)
		outside, err := s.Templates().GetHeader(ctx, "bom-x")
		require.NoError(t, err)
		assert.Nil(t, outside)
		return errors.New("fallo en la segunda parte")
	})
	require.Error(t, err)

	h, err := s.Templates().GetHeader(ctx, "bom-x")
	require.NoError(t, err)
	assert.Nil(t, h)

	err = s.TxRunner().RunTemplates(ctx, func(repo repository.TemplateRepository) error {
		if err := repo.InsertHeader(ctx, &entity.BOMTemplate{BOMID: "bom-x", UpdatedAt: now}); err != nil {
			return err
		}
		for _, pn := range []string{"P2", "P1"} {
			if err := repo.InsertPart(ctx, &entity.BOMTemplatePart{BOMID: "bom-x", PartNumber: pn, QuantityRequired: 1}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	parts, err := s.Templates().GetParts(ctx, "bom-x")
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "P1", parts[0].PartNumber)
	assert.NotZero(t, parts[0].ID)

	list, err := s.Templates().ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].PartCount)
}

func TestRunTemplates_Duplicado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	insert := func(repo repository.TemplateRepository) error {
		return repo.InsertHeader(ctx, &entity.BOMTemplate{BOMID: "dup"})
	}
	require.NoError(t, s.TxRunner().RunTemplates(ctx, insert))
	assert.ErrorIs(t, s.TxRunner().RunTemplates(ctx, insert), domain.ErrDuplicateKey)
}

func TestTemplateRepo_InsertFueraDeTransaccion(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Templates().InsertHeader(context.Background(), &entity.BOMTemplate{BOMID: "x"}))
}

func TestContextoCanceladoEsErrConnection(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Inventory().ListAll(ctx)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuditRepo(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Audit().Record(context.Background(), entity.AuditEntry{ID: "1"}))
	assert.Len(t, s.Audit().Entries(), 1)
}
