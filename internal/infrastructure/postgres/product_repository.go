package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, name, category_id, unit_id, description, min_stock, current_stock,
	avg_cost, selling_price, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, unitID *string
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &categoryID, &unitID, &p.Description, &p.MinStock,
		&p.CurrentStock, &p.AvgCost, &p.SellingPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.UnitID = deref(unitID)
	return &p, nil
}

// Create persiste un nuevo producto con el stock y costo que trae la entidad (normalmente 0).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, p.Name, nullable(p.CategoryID), nullable(p.UnitID), p.Description, p.MinStock,
		p.CurrentStock, p.AvgCost, p.SellingPrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, query, companyID, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

// Update actualiza datos de catálogo. No permite modificar stock ni costo (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $3, category_id = $4, unit_id = $5, description = $6, min_stock = $7,
			selling_price = $8, updated_at = $9
		WHERE company_id = $1 AND id = $2`,
		p.CompanyID, p.ID, p.Name, nullable(p.CategoryID), nullable(p.UnitID), p.Description, p.MinStock,
		p.SellingPrice, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock persiste stock y costo promedio (usado solo por el libro de inventario).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock, avgCost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, avg_cost = $3, updated_at = now() WHERE id = $1`,
		id, stock, avgCost,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos de la empresa por nombre.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) count(ctx context.Context, column, companyID, id string) (int, error) {
	if !validID(id) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE company_id = $1 AND `+column+` = $2`, companyID, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by %s: %w", column, err)
	}
	return n, nil
}

func (r *ProductRepo) CountByCategory(ctx context.Context, companyID, categoryID string) (int, error) {
	return r.count(ctx, "category_id", companyID, categoryID)
}

func (r *ProductRepo) CountByUnit(ctx context.Context, companyID, unitID string) (int, error) {
	return r.count(ctx, "unit_id", companyID, unitID)
}

// Delete elimina el producto; movimientos y renglones de materiales caen por ON DELETE CASCADE.
// Si es salida de una operación la FK lo impide y se devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
