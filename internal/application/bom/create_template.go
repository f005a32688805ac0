package bom

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/domain/entity"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
)

// CreateTemplateUseCase crea la cabecera y todas las partes de una plantilla de forma atómica.
type CreateTemplateUseCase struct {
	tx    TxRunner
	audit *audit.Recorder
	log   zerolog.Logger
	now   func() time.Time
}

// NewCreateTemplateUseCase construye el caso de uso.
func NewCreateTemplateUseCase(tx TxRunner, rec *audit.Recorder, log zerolog.Logger) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{tx: tx, audit: rec, log: log, now: time.Now}
}

// Create valida la entrada, arma la plantilla y la inserta en una transacción.
// bom_id es custom_id si viene, o "bom-" + segundos unix.
func (uc *CreateTemplateUseCase) Create(ctx context.Context, actorID string, in dto.CreateBOMTemplateRequest) (string, error) {
	in = normalizeRequest(in)
	if err := validateRequest(in); err != nil {
		return "", err
	}

	now := uc.now().UTC()
	header, parts := buildTemplate(in, actorID, now)

	err := uc.tx.RunTemplates(ctx, func(repo repository.TemplateRepository) error {
		if err := repo.InsertHeader(ctx, header); err != nil {
			return fmt.Errorf("insert header: %w", err)
		}
		for i := range parts {
			if err := repo.InsertPart(ctx, &parts[i]); err != nil {
				return fmt.Errorf("insert part %s: %w", parts[i].PartNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("bom_id", header.BOMID).Msg("creación de plantilla revertida")
		return "", classifyCreate(header.BOMID, err)
	}

	uc.log.Info().Str("bom_id", header.BOMID).Int("parts", len(parts)).Msg("plantilla creada")
	uc.audit.Record(ctx, entity.AuditActionCreate, entity.AuditEntityBOMTemplate, header.BOMID,
		map[string]any{
			"name":                 header.Name,
			"parts_count":          len(parts),
			"total_estimated_cost": header.TotalEstimatedCost.StringFixed(2),
		}, actorID)
	return header.BOMID, nil
}

// classifyCreate deja pasar clave duplicada y conexión; cualquier otro fallo de la unidad es ErrTransaction.
func classifyCreate(bomID string, err error) error {
	if errors.Is(err, domain.ErrDuplicateKey) || errors.Is(err, domain.ErrConnection) {
		return fmt.Errorf("plantilla %s: %w", bomID, err)
	}
	return fmt.Errorf("%w: plantilla %s: %w", domain.ErrTransaction, bomID, err)
}

func normalizeRequest(in dto.CreateBOMTemplateRequest) dto.CreateBOMTemplateRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.CustomID = strings.TrimSpace(in.CustomID)
	parts := make([]dto.BOMTemplatePartRequest, len(in.Parts))
	for i, p := range in.Parts {
		p.PartNumber = strings.TrimSpace(p.PartNumber)
		p.Description = strings.TrimSpace(p.Description)
		parts[i] = p
	}
	in.Parts = parts
	return in
}

func validateRequest(in dto.CreateBOMTemplateRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	fields := map[string]string{}
	for i, p := range in.Parts {
		if p.UnitCost.LessThan(decimal.Zero) {
			fields[fmt.Sprintf("parts[%d].unit_cost", i)] = "no puede ser negativo"
		}
	}
	if len(fields) > 0 {
		return &dto.ValidationError{Fields: fields}
	}
	return nil
}

func buildTemplate(in dto.CreateBOMTemplateRequest, actorID string, now time.Time) (*entity.BOMTemplate, []entity.BOMTemplatePart) {
	bomID := in.CustomID
	if bomID == "" {
		bomID = fmt.Sprintf("bom-%d", now.Unix())
	}
	createdBy := strings.TrimSpace(actorID)
	if createdBy == "" {
		createdBy = entity.BOMDefaultCreatedBy
	}

	parts := make([]entity.BOMTemplatePart, 0, len(in.Parts))
	for _, p := range in.Parts {
		availability := p.Availability
		if availability == "" {
			availability = entity.PartAvailabilityUnknown
		}
		part := entity.BOMTemplatePart{
			BOMID:            bomID,
			PartNumber:       p.PartNumber,
			Description:      p.Description,
			Category:         p.Category,
			QuantityRequired: p.QuantityRequired,
			UnitCost:         p.UnitCost.Round(2),
			Supplier:         p.Supplier,
			DigikeyPN:        p.DigikeyPN,
			Availability:     availability,
		}
		part.TotalCost = part.ComputeTotalCost()
		parts = append(parts, part)
	}

	header := &entity.BOMTemplate{
		BOMID:              bomID,
		Name:               in.Name,
		Description:        in.Description,
		Version:            entity.BOMDefaultVersion,
		Status:             entity.BOMStatusDraft,
		TotalEstimatedCost: entity.SumTotalCost(parts),
		CreatedBy:          createdBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return header, parts
}
