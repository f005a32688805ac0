package bom_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/bom-inventario-api/pkg/metrics"
)

type fixture struct {
	store   *memory.Store
	svc     *bom.Service
	rec     *audit.Recorder
	metrics *metrics.BOMMetrics
	reg     *prometheus.Registry
}

type fixtureOpts struct {
	tx   bom.TxRunner
	sink repository.AuditSink
}

func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()
	s := memory.NewStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewBOMMetrics(reg)
	sink := opts.sink
	if sink == nil {
		sink = s.Audit()
	}
	rec := audit.NewRecorder(sink, audit.Config{}, zerolog.Nop(), m)
	var tx bom.TxRunner = s.TxRunner()
	if opts.tx != nil {
		tx = opts.tx
	}

	updater, err := inventory.SelectStockUpdater(context.Background(), inventory.StrategyAuto, s.Inventory(), s.TxRunner(), zerolog.Nop())
	require.NoError(t, err)

	templates := bom.NewTemplateUseCase(s.Templates())
	svc := bom.NewService(bom.ServiceDeps{
		Templates:    templates,
		Create:       bom.NewCreateTemplateUseCase(tx, rec, zerolog.Nop()),
		Availability: bom.NewAvailabilityUseCase(templates, s.Inventory()),
		Inventory:    inventory.NewInventoryUseCase(s.Inventory(), rec),
		Stock:        inventory.NewStockReconciler(updater, rec, m, zerolog.Nop()),
		Config:       bom.NewConfigurationUseCase(s.Configuration()),
		Metrics:      m,
	})
	return &fixture{store: s, svc: svc, rec: rec, metrics: m, reg: reg}
}

func part(pn string, qty int, cost string) dto.BOMTemplatePartRequest {
	return dto.BOMTemplatePartRequest{
		PartNumber:       pn,
		Description:      "desc " + pn,
		Category:         "pasivos",
		QuantityRequired: qty,
		UnitCost:         decimal.RequireFromString(cost),
	}
}

func TestCreateTemplate_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	res := f.svc.CreateTemplate(ctx, "user-1", dto.CreateBOMTemplateRequest{
		Name:        "Placa control",
		Description: "rev A",
		CustomID:    "bom-placa",
		Parts:       []dto.BOMTemplatePartRequest{part("P2", 3, "0.10"), part("P1", 2, "1.25")},
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "bom-placa", res.Data.BOMID)
	require.NotNil(t, res.RowsAffected)
	assert.Equal(t, int64(3), *res.RowsAffected)

	got := f.svc.GetTemplate(ctx, "bom-placa")
	require.True(t, got.Success, got.Error)
	tpl := got.Data
	assert.Equal(t, "1.0", tpl.Version)
	assert.Equal(t, "draft", tpl.Status)
	assert.Equal(t, "user-1", tpl.CreatedBy)
	require.Len(t, tpl.Parts, 2)
	assert.Equal(t, "P1", tpl.Parts[0].PartNumber)
	assert.Equal(t, "P2", tpl.Parts[1].PartNumber)
	assert.Equal(t, entity.PartAvailabilityUnknown, tpl.Parts[0].Availability)

	sum := decimal.Zero
	for _, p := range tpl.Parts {
		assert.True(t, p.TotalCost.Equal(decimal.NewFromInt(int64(p.QuantityRequired)).Mul(p.UnitCost)))
		sum = sum.Add(p.TotalCost)
	}
	assert.True(t, tpl.TotalEstimatedCost.Equal(sum))
	assert.True(t, tpl.TotalEstimatedCost.Equal(decimal.RequireFromString("2.80")))

	list := f.svc.ListTemplates(ctx)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 2, list.Data[0].PartCount)

	f.rec.Wait()
	entries := f.store.Audit().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionCreate, entries[0].Action)
	assert.Equal(t, entity.AuditEntityBOMTemplate, entries[0].EntityType)
	assert.Equal(t, "bom-placa", entries[0].EntityID)
}

func TestCreateTemplate_IDGeneradoYAutorPorDefecto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	res := f.svc.CreateTemplate(ctx, "", dto.CreateBOMTemplateRequest{
		Name:  "Sin id",
		Parts: []dto.BOMTemplatePartRequest{part("P1", 1, "1")},
	})
	require.True(t, res.Success, res.Error)
	assert.Regexp(t, regexp.MustCompile(`^bom-\d+$`), res.Data.BOMID)

	got := f.svc.GetTemplate(ctx, res.Data.BOMID)
	require.True(t, got.Success)
	assert.Equal(t, entity.BOMDefaultCreatedBy, got.Data.CreatedBy)
}

// failingPartTx hace fallar la n-ésima inserción de parte dentro de la unidad de trabajo real.
type failingPartTx struct {
	inner  bom.TxRunner
	failAt int
}

func (f failingPartTx) RunTemplates(ctx context.Context, fn func(repo repository.TemplateRepository) error) error {
	return f.inner.RunTemplates(ctx, func(repo repository.TemplateRepository) error {
		return fn(&failingPartRepo{TemplateRepository: repo, failAt: f.failAt})
	})
}

type failingPartRepo struct {
	repository.TemplateRepository
	failAt int
	calls  int
}

func (r *failingPartRepo) InsertPart(ctx context.Context, p *entity.BOMTemplatePart) error {
	r.calls++
	if r.calls == r.failAt {
		return errors.New("violates check constraint")
	}
	return r.TemplateRepository.InsertPart(ctx, p)
}

func TestCreateTemplate_AtomicidadSiFallaLaSegundaParte(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	failing := failingPartTx{inner: f.store.TxRunner(), failAt: 2}
	f2 := bom.NewService(bom.ServiceDeps{
		Templates: bom.NewTemplateUseCase(f.store.Templates()),
		Create:    bom.NewCreateTemplateUseCase(failing, nil, zerolog.Nop()),
	})

	res := f2.CreateTemplate(ctx, "u", dto.CreateBOMTemplateRequest{
		Name:     "Atomica",
		CustomID: "bom-atomica",
		Parts:    []dto.BOMTemplatePartRequest{part("P1", 1, "1"), part("P2", 1, "1")},
	})
	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrTransaction)
	assert.Equal(t, domain.ErrTransaction, res.Kind())

	got := f2.GetTemplate(ctx, "bom-atomica")
	assert.False(t, got.Success)
	assert.ErrorIs(t, got.Err, domain.ErrNotFound)

	parts, err := f.store.Templates().GetParts(ctx, "bom-atomica")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestCreateTemplate_Validacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	tests := []struct {
		name  string
		in    dto.CreateBOMTemplateRequest
		field string
	}{
		{"sin partes", dto.CreateBOMTemplateRequest{Name: "x"}, "parts"},
		{"sin nombre", dto.CreateBOMTemplateRequest{Parts: []dto.BOMTemplatePartRequest{part("P1", 1, "1")}}, "name"},
		{"cantidad cero", dto.CreateBOMTemplateRequest{Name: "x", Parts: []dto.BOMTemplatePartRequest{part("P1", 0, "1")}}, "parts[0].quantity_required"},
		{"costo negativo", dto.CreateBOMTemplateRequest{Name: "x", Parts: []dto.BOMTemplatePartRequest{part("P1", 1, "1"), part("P2", 1, "-0.01")}}, "parts[1].unit_cost"},
		{"cantidad fuera de INTEGER", dto.CreateBOMTemplateRequest{Name: "x", Parts: []dto.BOMTemplatePartRequest{part("P1", math.MaxInt32+1, "1")}}, "parts[0].quantity_required"},
		{"número de parte vacío", dto.CreateBOMTemplateRequest{Name: "x", Parts: []dto.BOMTemplatePartRequest{part("  ", 1, "1")}}, "parts[0].part_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.svc.CreateTemplate(ctx, "u", tt.in)
			require.False(t, res.Success)
			assert.ErrorIs(t, res.Err, domain.ErrValidation)
			assert.Contains(t, res.ValidationDetails(), tt.field)
		})
	}

	list := f.svc.ListTemplates(ctx)
	require.True(t, list.Success)
	assert.Empty(t, list.Data, "ninguna validación fallida debe escribir")
}

func TestCreateTemplate_CustomIDDuplicado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	in := dto.CreateBOMTemplateRequest{Name: "x", CustomID: "bom-dup", Parts: []dto.BOMTemplatePartRequest{part("P1", 1, "1")}}

	require.True(t, f.svc.CreateTemplate(ctx, "u", in).Success)
	res := f.svc.CreateTemplate(ctx, "u", in)
	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrDuplicateKey)
	assert.NotErrorIs(t, res.Err, domain.ErrTransaction)
}

type brokenSink struct{}

func (brokenSink) Record(context.Context, entity.AuditEntry) error {
	return errors.New("audit_log: relation does not exist")
}

func TestCreateTemplate_FalloDeAuditoriaNoFallaLaOperacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{sink: brokenSink{}})

	res := f.svc.CreateTemplate(ctx, "u", dto.CreateBOMTemplateRequest{
		Name: "x", CustomID: "bom-ok", Parts: []dto.BOMTemplatePartRequest{part("P1", 1, "1")},
	})
	require.True(t, res.Success, res.Error)
	f.rec.Wait()

	assert.True(t, f.svc.GetTemplate(ctx, "bom-ok").Success)
}

func seedInventory(t *testing.T, f *fixture, pn string, stock, minStock int, cost string) {
	t.Helper()
	res := f.svc.CreateInventoryItem(context.Background(), "seed", dto.CreateInventoryItemRequest{
		PartNumber:    pn,
		ComponentName: "comp " + pn,
		CurrentStock:  stock,
		MinStock:      minStock,
		UnitCost:      decimal.RequireFromString(cost),
	})
	require.True(t, res.Success, res.Error)
}

func TestCheckAvailability_Ejemplo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	seedInventory(t, f, "A", 5, 0, "1.50")
	seedInventory(t, f, "C", 100, 0, "0.10")

	require.True(t, f.svc.CreateTemplate(ctx, "u", dto.CreateBOMTemplateRequest{
		Name:     "Ejemplo",
		CustomID: "bom-ej",
		Parts: []dto.BOMTemplatePartRequest{
			part("A", 8, "1.50"),
			part("B", 2, "3.00"),
			part("C", 10, "0.10"),
		},
	}).Success)

	res := f.svc.CheckAvailability(ctx, "bom-ej")
	require.True(t, res.Success, res.Error)
	r := res.Data
	assert.Equal(t, "bom-ej", r.BOMID)
	require.Len(t, r.Parts, 3)

	assert.Equal(t, "B", r.Parts[0].PartNumber)
	assert.Equal(t, "Unavailable", r.Parts[0].AvailabilityStatus)
	assert.Equal(t, 0, r.Parts[0].AvailableQuantity)
	assert.Equal(t, 2, r.Parts[0].Shortage)

	assert.Equal(t, "A", r.Parts[1].PartNumber)
	assert.Equal(t, "Partial", r.Parts[1].AvailabilityStatus)
	assert.Equal(t, 5, r.Parts[1].AvailableQuantity)
	assert.Equal(t, 3, r.Parts[1].Shortage)

	assert.Equal(t, "C", r.Parts[2].PartNumber)
	assert.Equal(t, "Available", r.Parts[2].AvailabilityStatus)

	for _, p := range r.Parts {
		assert.Equal(t, p.QuantityRequired, p.AvailableQuantity+p.Shortage)
	}
	assert.Equal(t, "Partial", r.Summary.Status)
	assert.Equal(t, 3, r.Summary.TotalParts)
	assert.Equal(t, 5, r.Summary.ShortageUnits)
}

func TestCheckAvailability_ReflejaElStockActual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	seedInventory(t, f, "A", 5, 0, "1.50")
	require.True(t, f.svc.CreateTemplate(ctx, "u", dto.CreateBOMTemplateRequest{
		Name: "x", CustomID: "bom-a", Parts: []dto.BOMTemplatePartRequest{part("A", 8, "1.50")},
	}).Success)

	upd := f.svc.SetStock(ctx, "A", 12, "u")
	require.True(t, upd.Success, upd.Error)
	assert.Equal(t, int64(1), *upd.RowsAffected)
	assert.Equal(t, inventory.StrategyProcedure, upd.Data.Path)

	res := f.svc.CheckAvailability(ctx, "bom-a")
	require.True(t, res.Success)
	assert.Equal(t, "Available", res.Data.Parts[0].AvailabilityStatus)
	assert.Equal(t, "Available", res.Data.Summary.Status)

	item := f.svc.GetInventoryItem(ctx, "A")
	require.True(t, item.Success)
	assert.Equal(t, 12, item.Data.CurrentStock)
	assert.True(t, item.Data.InventoryValue.Equal(decimal.RequireFromString("18.00")))
}

func TestCheckAvailability_PlantillaInexistente(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	res := f.svc.CheckAvailability(context.Background(), "bom-nada")
	require.False(t, res.Success)
	assert.Equal(t, domain.ErrNotFound, res.Kind())
	assert.NotEmpty(t, res.Error)
}

func TestLowStockReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	seedInventory(t, f, "A", 2, 10, "1")
	seedInventory(t, f, "B", 10, 10, "1")
	seedInventory(t, f, "C", 0, 3, "1")

	res := f.svc.LowStockReport(ctx)
	require.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "A", res.Data[0].PartNumber)
	assert.Equal(t, 8, res.Data[0].Shortage)
	for _, e := range res.Data {
		assert.Less(t, e.CurrentStock, e.MinStock)
	}
}

func TestService_RegistraMetricasPorResultado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	f.svc.CheckAvailability(ctx, "no-existe")
	f.svc.ListInventory(ctx)

	mfs, err := f.reg.Gather()
	require.NoError(t, err)
	results := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "bom_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			key := ""
			for _, l := range m.GetLabel() {
				key += l.GetName() + "=" + l.GetValue() + ","
			}
			results[key] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, results["operation=check_availability,result=not_found,"])
	assert.Equal(t, 1.0, results["operation=list_inventory,result=ok,"])
}

func TestSystemConfiguration_SinFilaDevuelveObjetoVacio(t *testing.T) {
	f := newFixture(t, fixtureOpts{})

	res := f.svc.SystemConfiguration(context.Background())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, dto.SystemConfigurationResponse{}, res.Data)

	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestSystemConfiguration_ConFila(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.store.Configuration().Put(entity.SystemConfigID, entity.SystemConfiguration{
		Settings: json.RawMessage(`{"currency":"COP","lowStockAlerts":true}`),
	})

	res := f.svc.SystemConfiguration(context.Background())
	require.True(t, res.Success, res.Error)

	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"settings":{"currency":"COP","lowStockAlerts":true},"fieldMappings":{}}`, string(raw))
}

func TestSystemConfiguration_OtrasFilasNoCuentan(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.store.Configuration().Put("otra", entity.SystemConfiguration{Settings: json.RawMessage(`{"a":1}`)})

	res := f.svc.SystemConfiguration(context.Background())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, dto.SystemConfigurationResponse{}, res.Data)
}

func TestSystemConfiguration_ContextoCanceladoEsConexion(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.svc.SystemConfiguration(ctx)
	require.False(t, res.Success)
	assert.Equal(t, domain.ErrConnection, res.Kind())
}
