package inventory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// RegisterFromRequest adapta el body HTTP al caso de uso. companyID viene del JWT.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, companyID string, req dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	input := MovementInputDTO{
		CompanyID:  companyID,
		ProductID:  req.ProductID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Notes:      req.Notes,
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	out := MovementToResponse(mov)
	return &out, nil
}

// ListFromQuery lista movimientos con filtros de query string (from/to AAAA-MM-DD).
func (uc *RegisterMovementUseCase) ListFromQuery(ctx context.Context, companyID, productID, movType, from, to string, limit int) ([]dto.MovementResponse, error) {
	if movType != "" && movType != entity.MovementTypeIn && movType != entity.MovementTypeOut {
		return nil, domain.Invalid("type", "debe ser in u out")
	}
	fromDate, err := dto.ParseOptionalDate("from", from)
	if err != nil {
		return nil, err
	}
	toDate, err := dto.ParseOptionalDate("to", to)
	if err != nil {
		return nil, err
	}
	list, err := uc.ListMovements(ctx, repository.MovementFilter{
		CompanyID: companyID,
		ProductID: productID,
		Type:      movType,
		From:      fromDate,
		To:        toDate,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementToResponse(m))
	}
	return out, nil
}

// MovementToResponse mapea la entidad a su DTO de salida.
func MovementToResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		PricePerUnit: m.PricePerUnit,
		TotalCost:    m.TotalCost,
		EmployeeID:   m.EmployeeID,
		ProductionID: m.ProductionID,
		Date:         dto.FormatDate(m.Date),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}
