package production

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// UseCase gestiona operaciones de producción: consumo de N materiales y alta de un producto
// de salida con su costo derivado, y la reversión al eliminar.
type UseCase struct {
	txRunner    appinv.TxRunner
	recorder    *appinv.RegisterMovementUseCase
	prodRepo    repository.ProductionRepository
	productRepo repository.ProductRepository
	invalidator appinv.Invalidator
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewUseCase(
	txRunner appinv.TxRunner,
	recorder *appinv.RegisterMovementUseCase,
	prodRepo repository.ProductionRepository,
	productRepo repository.ProductRepository,
	invalidator appinv.Invalidator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		recorder:    recorder,
		prodRepo:    prodRepo,
		productRepo: productRepo,
		invalidator: appinv.OrNoop(invalidator),
		log:         logger.OrNop(log),
		now:         time.Now,
	}
}

type parsedRequest struct {
	req  dto.CreateProductionRequest
	date time.Time
	// cantidades agregadas por producto (el mismo material puede venir dos veces)
	required map[string]decimal.Decimal
}

func parseRequest(req dto.CreateProductionRequest) (*parsedRequest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	if req.OutputProductID == "" {
		return nil, domain.Invalid("output_product_id", "es requerido")
	}
	if !req.OutputQuantity.IsPositive() {
		return nil, domain.Invalid("output_quantity", "debe ser mayor que cero")
	}
	if req.AdditionalCosts.IsNegative() {
		return nil, domain.Invalid("additional_costs", "no puede ser negativo")
	}
	if len(req.Materials) == 0 {
		return nil, domain.Invalid("materials", "se requiere al menos un material")
	}
	required := make(map[string]decimal.Decimal, len(req.Materials))
	for i, m := range req.Materials {
		field := fmt.Sprintf("materials[%d]", i)
		if m.ProductID == "" {
			return nil, domain.Invalid(field+".product_id", "es requerido")
		}
		if m.ProductID == req.OutputProductID {
			return nil, domain.Invalid(field+".product_id", "el producto de salida no puede consumirse como material")
		}
		if !m.QuantityUsed.IsPositive() {
			return nil, domain.Invalid(field+".quantity_used", "debe ser mayor que cero")
		}
		if m.UnitCost != nil && m.UnitCost.IsNegative() {
			return nil, domain.Invalid(field+".unit_cost", "no puede ser negativo")
		}
		required[m.ProductID] = required[m.ProductID].Add(m.QuantityUsed)
	}
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	return &parsedRequest{req: req, date: date, required: required}, nil
}

// sortedIDs ids únicos ordenados; los productos se bloquean siempre en este orden para evitar deadlocks.
func sortedIDs(ids ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, group := range ids {
		for _, id := range group {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (p *parsedRequest) materialIDs() []string {
	ids := make([]string, 0, len(p.required))
	for id := range p.required {
		ids = append(ids, id)
	}
	return ids
}

// costLines arma las líneas de costo; el costo unitario por defecto es el promedio vigente.
// Un costo explícito se redondea a centavos, igual que el que queda en el renglón de material.
func costLines(materials []dto.ProductionMaterialRequest, products map[string]*entity.Product) []inventory.MaterialLine {
	lines := make([]inventory.MaterialLine, 0, len(materials))
	for _, m := range materials {
		cost := products[m.ProductID].AvgCost
		if m.UnitCost != nil {
			cost = inventory.RoundCost(*m.UnitCost)
		}
		lines = append(lines, inventory.MaterialLine{ProductID: m.ProductID, Quantity: m.QuantityUsed, UnitCost: cost})
	}
	return lines
}

// Create valida disponibilidad, persiste la operación y emite un movimiento de salida por material
// y uno de entrada para el producto producido, todo en una transacción.
// Si algún material no alcanza se rechaza la operación completa sin efectos.
func (uc *UseCase) Create(ctx context.Context, companyID string, req dto.CreateProductionRequest) (*dto.CreateProductionResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	req.Name = strings.TrimSpace(req.Name)
	parsed, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	date := parsed.date
	if date.IsZero() {
		date = now
	}

	var op *entity.ProductionOperation
	var breakdown inventory.CostBreakdown
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos appinv.TxRepos) error {
		if req.EmployeeID != "" {
			emp, err := repos.Employees.GetByID(ctx, companyID, req.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return domain.Invalid("employee_id", "empleado no encontrado")
			}
		}

		products := make(map[string]*entity.Product)
		for _, id := range sortedIDs(parsed.materialIDs(), []string{req.OutputProductID}) {
			p, err := repos.Products.GetForUpdate(ctx, companyID, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			products[id] = p
		}

		for _, id := range sortedIDs(parsed.materialIDs()) {
			need := parsed.required[id]
			if products[id].CurrentStock.LessThan(need) {
				return &domain.StockShortageError{ProductID: id, Available: products[id].CurrentStock, Requested: need}
			}
		}

		breakdown, err = inventory.ProductionCost(costLines(req.Materials, products), req.AdditionalCosts, req.OutputQuantity)
		if err != nil {
			return err
		}

		op = &entity.ProductionOperation{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			Name:            req.Name,
			EmployeeID:      req.EmployeeID,
			OutputProductID: req.OutputProductID,
			OutputQuantity:  req.OutputQuantity,
			OutputCost:      breakdown.TotalCost,
			AdditionalCosts: breakdown.AdditionalCosts,
			Date:            entity.DateOf(date),
			Notes:           req.Notes,
			CreatedAt:       now,
		}
		for _, l := range costLines(req.Materials, products) {
			op.Materials = append(op.Materials, entity.ProductionMaterial{
				ID:           uuid.New().String(),
				ProductionID: op.ID,
				ProductID:    l.ProductID,
				QuantityUsed: l.Quantity,
				CostPerUnit:  inventory.RoundCost(l.UnitCost),
			})
		}
		if err := repos.Production.Create(ctx, op); err != nil {
			return err
		}

		notes := "Producción: " + req.Name
		for _, m := range op.Materials {
			// la salida se valoriza al mismo costo que el renglón de material
			cost := m.CostPerUnit
			if _, err := uc.recorder.RegisterInTx(ctx, repos, appinv.MovementInputDTO{
				CompanyID:    companyID,
				ProductID:    m.ProductID,
				Type:         entity.MovementTypeOut,
				Quantity:     m.QuantityUsed,
				ValueAt:      &cost,
				EmployeeID:   req.EmployeeID,
				Date:         date,
				Notes:        notes,
				ProductionID: op.ID,
			}); err != nil {
				return err
			}
		}
		_, err = uc.recorder.RegisterInTx(ctx, repos, appinv.MovementInputDTO{
			CompanyID:    companyID,
			ProductID:    req.OutputProductID,
			Type:         entity.MovementTypeIn,
			Quantity:     req.OutputQuantity,
			UnitCost:     breakdown.CostPerUnit,
			EmployeeID:   req.EmployeeID,
			Date:         date,
			Notes:        notes,
			ProductionID: op.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	uc.log.Info().Str("company_id", companyID).Str("production_id", op.ID).
		Str("total_cost", breakdown.TotalCost.StringFixed(2)).Msg("operación de producción registrada")
	return &dto.CreateProductionResponse{ID: op.ID, Breakdown: toBreakdown(breakdown)}, nil
}

// Preview calcula el desglose y la disponibilidad de materiales sin escribir nada.
func (uc *UseCase) Preview(ctx context.Context, companyID string, req dto.CreateProductionRequest) (*dto.ProductionPreviewResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	if req.Name = strings.TrimSpace(req.Name); req.Name == "" {
		// la vista previa se pide mientras el formulario aún no tiene nombre
		req.Name = "preview"
	}
	parsed, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product)
	for _, id := range sortedIDs(parsed.materialIDs()) {
		p, err := uc.productRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		products[id] = p
	}
	lines := costLines(req.Materials, products)
	breakdown, err := inventory.ProductionCost(lines, req.AdditionalCosts, req.OutputQuantity)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductionPreviewResponse{Breakdown: toBreakdown(breakdown), MaterialsValid: true}
	for _, l := range lines {
		p := products[l.ProductID]
		enough := p.CurrentStock.GreaterThanOrEqual(parsed.required[l.ProductID])
		if !enough {
			out.MaterialsValid = false
		}
		out.Materials = append(out.Materials, dto.MaterialAvailability{
			ProductID: l.ProductID,
			Required:  l.Quantity,
			Available: p.CurrentStock,
			UnitCost:  inventory.RoundCost(l.UnitCost),
			Cost:      inventory.RoundCost(l.Quantity.Mul(l.UnitCost)),
			Enough:    enough,
		})
	}
	return out, nil
}

// Delete revierte una operación: devuelve los materiales al stock, retira la salida producida
// (como máximo el stock disponible) y elimina operación, materiales y movimientos asociados.
// El costo promedio no se recalcula. Si la salida no alcanza, se devuelve un aviso en Warning.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) (*dto.DeleteProductionResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	var res dto.DeleteProductionResponse
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos appinv.TxRepos) error {
		res = dto.DeleteProductionResponse{}
		op, err := repos.Production.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}

		materialIDs := make([]string, 0, len(op.Materials))
		returned := make(map[string]decimal.Decimal)
		for _, m := range op.Materials {
			if _, ok := returned[m.ProductID]; !ok {
				materialIDs = append(materialIDs, m.ProductID)
			}
			returned[m.ProductID] = returned[m.ProductID].Add(m.QuantityUsed)
		}
		for _, pid := range sortedIDs(materialIDs, []string{op.OutputProductID}) {
			if pid == op.OutputProductID {
				out, err := repos.Products.GetForUpdate(ctx, companyID, pid)
				if err != nil {
					return err
				}
				if out == nil {
					return fmt.Errorf("producto de salida %s: %w", pid, domain.ErrNotFound)
				}
				removed, short := inventory.RemovableQuantity(out.CurrentStock, op.OutputQuantity)
				if removed.IsPositive() {
					if _, err := appinv.ApplyToProduct(ctx, repos.Products, companyID, pid, removed.Neg(), decimal.Zero); err != nil {
						return err
					}
				}
				res.OutputRemoved = removed
				if short {
					res.Warning = fmt.Sprintf(
						"solo se pudieron retirar %s de %s unidades del producto de salida; el stock disponible era menor que lo producido",
						removed.String(), op.OutputQuantity.String())
				}
				continue
			}
			if _, err := appinv.ApplyToProduct(ctx, repos.Products, companyID, pid, returned[pid], decimal.Zero); err != nil {
				return err
			}
		}
		res.MaterialsReturned = len(op.Materials)

		if _, err := repos.Movements.DeleteByProduction(ctx, op.ID); err != nil {
			return err
		}
		return repos.Production.Delete(ctx, op.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	res.Success = true
	res.Message = "Operación de producción eliminada"
	if res.Warning != "" {
		uc.log.Warn().Str("company_id", companyID).Str("production_id", id).
			Str("output_removed", res.OutputRemoved.String()).Msg(res.Warning)
	}
	return &res, nil
}

// Get devuelve la operación con sus materiales.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.ProductionResponse, error) {
	op, err := uc.GetEntity(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := ToResponse(op)
	return &out, nil
}

// GetEntity devuelve la entidad (usada por el generador de PDF).
func (uc *UseCase) GetEntity(ctx context.Context, companyID, id string) (*entity.ProductionOperation, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	op, err := uc.prodRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	return op, nil
}

// List lista operaciones del período (from/to AAAA-MM-DD, opcionales), sin materiales.
func (uc *UseCase) List(ctx context.Context, companyID, from, to string) ([]dto.ProductionResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	fromDate, err := dto.ParseOptionalDate("from", from)
	if err != nil {
		return nil, err
	}
	toDate, err := dto.ParseOptionalDate("to", to)
	if err != nil {
		return nil, err
	}
	ops, err := uc.prodRepo.List(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, ToResponse(op))
	}
	return out, nil
}

// ToResponse mapea la operación a su DTO.
func ToResponse(op *entity.ProductionOperation) dto.ProductionResponse {
	r := dto.ProductionResponse{
		ID:              op.ID,
		Name:            op.Name,
		EmployeeID:      op.EmployeeID,
		OutputProductID: op.OutputProductID,
		OutputQuantity:  op.OutputQuantity,
		OutputCost:      op.OutputCost,
		AdditionalCosts: op.AdditionalCosts,
		Date:            dto.FormatDate(op.Date),
		Notes:           op.Notes,
		CreatedAt:       op.CreatedAt,
	}
	if op.OutputQuantity.IsPositive() {
		r.CostPerUnit = inventory.RoundCost(op.OutputCost.Div(op.OutputQuantity))
	}
	for _, m := range op.Materials {
		r.Materials = append(r.Materials, dto.ProductionMaterialResponse{
			ProductID:    m.ProductID,
			QuantityUsed: m.QuantityUsed,
			CostPerUnit:  m.CostPerUnit,
			Cost:         inventory.RoundCost(m.Cost()),
		})
	}
	return r
}

func toBreakdown(b inventory.CostBreakdown) dto.CostBreakdownResponse {
	return dto.CostBreakdownResponse{
		MaterialsCost:   b.MaterialsCost,
		AdditionalCosts: b.AdditionalCosts,
		TotalCost:       b.TotalCost,
		CostPerUnit:     inventory.RoundCost(b.CostPerUnit),
	}
}
