package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock y costo promedio se manejan vía movimientos.
type ProductUseCase struct {
	txRunner     appinv.TxRunner
	recorder     *appinv.RegisterMovementUseCase
	repo         repository.ProductRepository
	prodRepo     repository.ProductionRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	invalidator  appinv.Invalidator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner appinv.TxRunner,
	recorder *appinv.RegisterMovementUseCase,
	repo repository.ProductRepository,
	prodRepo repository.ProductionRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	invalidator appinv.Invalidator,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		recorder:     recorder,
		repo:         repo,
		prodRepo:     prodRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		invalidator:  appinv.OrNoop(invalidator),
	}
}

// Create crea un producto. Si InitialStock > 0 se registra un movimiento de entrada de apertura
// a InitialCost en la misma transacción, así el stock siempre es la suma de sus movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	if in.MinStock.IsNegative() {
		return nil, domain.Invalid("min_stock", "no puede ser negativo")
	}
	if in.SellingPrice.IsNegative() {
		return nil, domain.Invalid("selling_price", "no puede ser negativo")
	}
	if in.InitialStock.IsNegative() {
		return nil, domain.Invalid("initial_stock", "no puede ser negativo")
	}
	if in.InitialCost.IsNegative() {
		return nil, domain.Invalid("initial_cost", "no puede ser negativo")
	}
	if err := uc.checkRefs(ctx, companyID, in.CategoryID, in.UnitID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		UnitID:       in.UnitID,
		Description:  in.Description,
		MinStock:     in.MinStock,
		SellingPrice: in.SellingPrice.Round(2),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos appinv.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if !in.InitialStock.IsPositive() {
			return nil
		}
		_, err := uc.recorder.RegisterInTx(ctx, repos, appinv.MovementInputDTO{
			CompanyID: companyID,
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  in.InitialStock,
			UnitCost:  in.InitialCost,
			Notes:     "Stock inicial",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, product.ID)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve los productos de la empresa ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, companyID string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza datos de catálogo. No permite modificar stock ni costo (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "es requerido")
		}
		product.Name = name
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.Invalid("min_stock", "no puede ser negativo")
		}
		product.MinStock = *in.MinStock
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.Invalid("selling_price", "no puede ser negativo")
		}
		product.SellingPrice = in.SellingPrice.Round(2)
	}
	if err := uc.checkRefs(ctx, companyID, product.CategoryID, product.UnitID); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina el producto con sus movimientos. Rechaza con domain.ErrConflict si es la salida
// de alguna operación de producción (primero hay que eliminar la operación).
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	n, err := uc.prodRepo.CountByOutputProduct(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("el producto es salida de %d operaciones de producción: %w", n, domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, companyID, categoryID, unitID string) error {
	if categoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, companyID, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.Invalid("category_id", "categoría no encontrada")
		}
	}
	if unitID != "" {
		u, err := uc.unitRepo.GetByID(ctx, companyID, unitID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.Invalid("unit_id", "unidad no encontrada")
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		UnitID:       p.UnitID,
		Description:  p.Description,
		MinStock:     p.MinStock,
		CurrentStock: p.CurrentStock,
		AvgCost:      p.AvgCost,
		SellingPrice: p.SellingPrice,
		StockValue:   p.StockValue().Round(2),
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
