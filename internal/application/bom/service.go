package bom

import (
	"context"
	"time"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/pkg/metrics"
)

// Nombres de operación usados como etiqueta de métricas.
const (
	OpCheckAvailability   = "check_availability"
	OpCreateTemplate      = "create_template"
	OpGetTemplate         = "get_template"
	OpListTemplates       = "list_templates"
	OpSetStock            = "set_stock"
	OpLowStockReport      = "low_stock_report"
	OpListInventory       = "list_inventory"
	OpGetInventoryItem    = "get_inventory_item"
	OpCreateInventoryItem = "create_inventory_item"
	OpSystemConfiguration = "system_configuration"
)

// ServiceDeps dependencias del servicio.
type ServiceDeps struct {
	Templates    *TemplateUseCase
	Create       *CreateTemplateUseCase
	Availability *AvailabilityUseCase
	Inventory    *inventory.InventoryUseCase
	Stock        *inventory.StockReconciler
	Config       *ConfigurationUseCase
	Metrics      *metrics.BOMMetrics
}

// Service fachada única del núcleo. Los adaptadores de transporte (HTTP, CLI) solo llaman aquí;
// cada operación devuelve un dto.Result en lugar de propagar errores.
type Service struct {
	templates    *TemplateUseCase
	create       *CreateTemplateUseCase
	availability *AvailabilityUseCase
	inventory    *inventory.InventoryUseCase
	stock        *inventory.StockReconciler
	config       *ConfigurationUseCase
	metrics      *metrics.BOMMetrics
}

// NewService construye la fachada.
func NewService(d ServiceDeps) *Service {
	return &Service{
		templates:    d.Templates,
		create:       d.Create,
		availability: d.Availability,
		inventory:    d.Inventory,
		stock:        d.Stock,
		config:       d.Config,
		metrics:      d.Metrics,
	}
}

// StockPath estrategia activa de actualización de stock (procedure | direct).
func (s *Service) StockPath() string { return s.stock.Path() }

// Ping verifica el almacén.
func (s *Service) Ping(ctx context.Context) error { return s.inventory.Ping(ctx) }

// CheckAvailability disponibilidad por parte y agregada de la plantilla bomID.
func (s *Service) CheckAvailability(ctx context.Context, bomID string) dto.Result[dto.AvailabilityReportResponse] {
	start := time.Now()
	report, err := s.availability.Check(ctx, bomID)
	s.observe(OpCheckAvailability, start, err)
	if err != nil {
		return dto.Fail[dto.AvailabilityReportResponse](err)
	}
	return dto.OK(ToAvailabilityResponse(*report))
}

// CreateTemplate crea la plantilla y sus partes atómicamente. rows_affected = cabecera + partes.
func (s *Service) CreateTemplate(ctx context.Context, actorID string, in dto.CreateBOMTemplateRequest) dto.Result[dto.CreateBOMTemplateResponse] {
	start := time.Now()
	bomID, err := s.create.Create(ctx, actorID, in)
	s.observe(OpCreateTemplate, start, err)
	if err != nil {
		return dto.Fail[dto.CreateBOMTemplateResponse](err)
	}
	return dto.OKRows(dto.CreateBOMTemplateResponse{BOMID: bomID}, int64(1+len(in.Parts)))
}

// GetTemplate devuelve la plantilla con sus partes.
func (s *Service) GetTemplate(ctx context.Context, bomID string) dto.Result[dto.BOMTemplateResponse] {
	start := time.Now()
	tpl, err := s.templates.Get(ctx, bomID)
	s.observe(OpGetTemplate, start, err)
	if err != nil {
		return dto.Fail[dto.BOMTemplateResponse](err)
	}
	return dto.OK(ToTemplateResponse(*tpl))
}

// ListTemplates resumen de plantillas.
func (s *Service) ListTemplates(ctx context.Context) dto.Result[[]dto.BOMTemplateSummaryResponse] {
	start := time.Now()
	list, err := s.templates.List(ctx)
	s.observe(OpListTemplates, start, err)
	if err != nil {
		return dto.Fail[[]dto.BOMTemplateSummaryResponse](err)
	}
	return dto.OK(ToSummaryResponses(list))
}

// SetStock fija el stock absoluto de un ítem.
func (s *Service) SetStock(ctx context.Context, partNumber string, newStock int, actorID string) dto.Result[dto.StockUpdateResponse] {
	start := time.Now()
	rows, err := s.stock.SetStock(ctx, partNumber, newStock, actorID)
	s.observe(OpSetStock, start, err)
	if err != nil {
		return dto.Fail[dto.StockUpdateResponse](err)
	}
	return dto.OKRows(dto.StockUpdateResponse{
		PartNumber: partNumber,
		NewStock:   newStock,
		Path:       s.stock.Path(),
	}, rows)
}

// LowStockReport ítems con stock por debajo del mínimo.
func (s *Service) LowStockReport(ctx context.Context) dto.Result[[]dto.LowStockItemResponse] {
	start := time.Now()
	entries, err := s.inventory.LowStock(ctx)
	s.observe(OpLowStockReport, start, err)
	if err != nil {
		return dto.Fail[[]dto.LowStockItemResponse](err)
	}
	return dto.OK(inventory.ToLowStockResponses(entries))
}

// ListInventory todos los ítems de inventario.
func (s *Service) ListInventory(ctx context.Context) dto.Result[[]dto.InventoryItemResponse] {
	start := time.Now()
	items, err := s.inventory.List(ctx)
	s.observe(OpListInventory, start, err)
	if err != nil {
		return dto.Fail[[]dto.InventoryItemResponse](err)
	}
	return dto.OK(inventory.ToItemResponses(items))
}

// GetInventoryItem un ítem por número de parte.
func (s *Service) GetInventoryItem(ctx context.Context, partNumber string) dto.Result[dto.InventoryItemResponse] {
	start := time.Now()
	item, err := s.inventory.Get(ctx, partNumber)
	s.observe(OpGetInventoryItem, start, err)
	if err != nil {
		return dto.Fail[dto.InventoryItemResponse](err)
	}
	return dto.OK(inventory.ToItemResponse(*item))
}

// CreateInventoryItem da de alta un ítem.
func (s *Service) CreateInventoryItem(ctx context.Context, actorID string, in dto.CreateInventoryItemRequest) dto.Result[dto.InventoryItemResponse] {
	start := time.Now()
	item, err := s.inventory.Create(ctx, actorID, in)
	s.observe(OpCreateInventoryItem, start, err)
	if err != nil {
		return dto.Fail[dto.InventoryItemResponse](err)
	}
	return dto.OKRows(inventory.ToItemResponse(*item), 1)
}

// SystemConfiguration ajustes generales y mapeos de campos.
func (s *Service) SystemConfiguration(ctx context.Context) dto.Result[dto.SystemConfigurationResponse] {
	start := time.Now()
	cfg, err := s.config.System(ctx)
	s.observe(OpSystemConfiguration, start, err)
	if err != nil {
		return dto.Fail[dto.SystemConfigurationResponse](err)
	}
	return dto.OK(cfg)
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.metrics.ObserveOperation(op, domain.Label(err), time.Since(start))
}
