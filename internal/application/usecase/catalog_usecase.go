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

// Unidades y categorías que recibe toda empresa nueva.
var (
	DefaultUnits = []entity.Unit{
		{Name: "Pieza", ShortName: "pcs"},
		{Name: "Kilogramo", ShortName: "kg"},
		{Name: "Tonelada", ShortName: "t"},
		{Name: "Litro", ShortName: "l"},
		{Name: "Metro", ShortName: "m"},
		{Name: "Paquete", ShortName: "pack"},
	}
	DefaultCategories = []entity.Category{
		{Name: "Materias primas", Description: "Insumos consumidos en producción"},
		{Name: "Semielaborados", Description: "Productos intermedios"},
		{Name: "Productos terminados", Description: "Listos para la venta"},
		{Name: "Consumibles", Description: "Materiales auxiliares"},
	}
)

// CatalogUseCase categorías y unidades de medida. La baja se bloquea mientras haya productos que las usen.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	productRepo  repository.ProductRepository
	invalidator  appinv.Invalidator
}

// NewCatalogUseCase construye el caso de uso. invalidator puede ser nil; se llama tras cada
// alta o baja porque el resumen del dashboard etiqueta el stock con unidad y categoría.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	productRepo repository.ProductRepository,
	invalidator appinv.Invalidator,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		productRepo:  productRepo,
		invalidator:  appinv.OrNoop(invalidator),
	}
}

// SeedDefaults crea las unidades y categorías por defecto de una empresa. Ignora duplicados.
func (uc *CatalogUseCase) SeedDefaults(ctx context.Context, companyID string) error {
	now := time.Now()
	for _, u := range DefaultUnits {
		u.ID = uuid.New().String()
		u.CompanyID = companyID
		u.CreatedAt = now
		if err := uc.unitRepo.Create(ctx, &u); err != nil && !domain.IsDuplicate(err) {
			return fmt.Errorf("seed unidad %s: %w", u.ShortName, err)
		}
	}
	for _, c := range DefaultCategories {
		c.ID = uuid.New().String()
		c.CompanyID = companyID
		c.CreatedAt = now
		if err := uc.categoryRepo.Create(ctx, &c); err != nil && !domain.IsDuplicate(err) {
			return fmt.Errorf("seed categoría %s: %w", c.Name, err)
		}
	}
	return nil
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Deletable: true}, nil
}

// ListCategories incluye el conteo de productos y si se puede eliminar.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, companyID string) ([]*dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		n, err := uc.productRepo.CountByCategory(ctx, companyID, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.CategoryResponse{
			ID: c.ID, Name: c.Name, Description: c.Description, ProductCount: n, Deletable: n == 0,
		})
	}
	return out, nil
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, companyID, id string) error {
	n, err := uc.productRepo.CountByCategory(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("la categoría tiene %d productos: %w", n, domain.ErrConflict)
	}
	if err := uc.categoryRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return nil
}

func (uc *CatalogUseCase) CreateUnit(ctx context.Context, companyID string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	short := strings.TrimSpace(in.ShortName)
	if short == "" {
		return nil, domain.Invalid("short_name", "es requerido")
	}
	u := &entity.Unit{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		ShortName: short,
		CreatedAt: time.Now(),
	}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, ShortName: u.ShortName, Deletable: true}, nil
}

func (uc *CatalogUseCase) ListUnits(ctx context.Context, companyID string) ([]*dto.UnitResponse, error) {
	list, err := uc.unitRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UnitResponse, 0, len(list))
	for _, u := range list {
		n, err := uc.productRepo.CountByUnit(ctx, companyID, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.UnitResponse{
			ID: u.ID, Name: u.Name, ShortName: u.ShortName, ProductCount: n, Deletable: n == 0,
		})
	}
	return out, nil
}

func (uc *CatalogUseCase) DeleteUnit(ctx context.Context, companyID, id string) error {
	n, err := uc.productRepo.CountByUnit(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("la unidad tiene %d productos: %w", n, domain.ErrConflict)
	}
	if err := uc.unitRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return nil
}
