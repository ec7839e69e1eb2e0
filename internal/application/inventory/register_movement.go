package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional:
// inserta el movimiento inmutable y actualiza el libro del producto en la misma tx.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	invalidator Invalidator
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. invalidator puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	invalidator Invalidator,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		invalidator: OrNoop(invalidator),
		now:         time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// UnitCost solo se usa en entradas; cero significa recepción sin precio (el promedio no cambia).
// ValueAt solo se usa en salidas: costo unitario con el que se valoriza el movimiento
// (nil = costo promedio vigente). No afecta al promedio.
type MovementInputDTO struct {
	CompanyID    string
	ProductID    string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	ValueAt      *decimal.Decimal
	EmployeeID   string
	Date         time.Time // zero = hoy
	Notes        string
	ProductionID string
}

// RegisterMovement valida, abre una transacción y registra el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		var err error
		mov, err = uc.RegisterInTx(ctx, repos, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, input.CompanyID)
	return mov, nil
}

// RegisterInTx registra el movimiento usando los repositorios de la transacción del caller.
// Usado por producción y por el alta de productos con stock inicial.
//
// Las salidas se valorizan a ValueAt o, si no viene, al costo promedio vigente del producto.
func (uc *RegisterMovementUseCase) RegisterInTx(ctx context.Context, repos TxRepos, input MovementInputDTO) (*entity.StockMovement, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	if input.EmployeeID != "" {
		emp, err := repos.Employees.GetByID(ctx, input.CompanyID, input.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound
		}
	}

	signed := input.Quantity
	unitCost := input.UnitCost
	if input.Type == entity.MovementTypeOut {
		signed = input.Quantity.Neg()
		unitCost = decimal.Zero
	}

	product, err := repos.Products.GetForUpdate(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	pricePerUnit := input.UnitCost
	if input.Type == entity.MovementTypeOut {
		pricePerUnit = product.AvgCost
		if input.ValueAt != nil {
			pricePerUnit = *input.ValueAt
		}
	}

	now := uc.now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		CompanyID:    input.CompanyID,
		ProductID:    input.ProductID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		PricePerUnit: inventory.RoundCost(pricePerUnit),
		TotalCost:    inventory.RoundCost(input.Quantity.Mul(pricePerUnit)),
		EmployeeID:   input.EmployeeID,
		ProductionID: input.ProductionID,
		Date:         entity.DateOf(date),
		Notes:        input.Notes,
		CreatedAt:    now,
	}
	// Inserta el movimiento y luego actualiza el libro; si el libro falla la tx hace rollback del insert.
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if _, err := ApplyToProduct(ctx, repos.Products, input.CompanyID, input.ProductID, signed, unitCost); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements lista movimientos de la empresa según el filtro.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.CompanyID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.movRepo.List(ctx, filter)
}

func validateMovement(input MovementInputDTO) error {
	if input.CompanyID == "" {
		return domain.ErrUnauthorized
	}
	if input.ProductID == "" {
		return domain.Invalid("product_id", "es requerido")
	}
	if input.Type != entity.MovementTypeIn && input.Type != entity.MovementTypeOut {
		return domain.Invalid("type", "debe ser in u out")
	}
	if !input.Quantity.IsPositive() {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if input.UnitCost.IsNegative() {
		return domain.Invalid("unit_cost", "no puede ser negativo")
	}
	if input.ValueAt != nil && input.ValueAt.IsNegative() {
		return domain.Invalid("unit_cost", "no puede ser negativo")
	}
	return nil
}
