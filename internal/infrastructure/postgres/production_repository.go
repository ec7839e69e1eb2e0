package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

const productionColumns = `id, company_id, name, employee_id, output_product_id, output_quantity, output_cost,
	additional_costs, date, notes, created_at`

// ProductionRepo implementación del puerto ProductionRepository sobre PostgreSQL.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create inserta cabecera y materiales. Debe llamarse dentro de una tx para que sea atómico.
func (r *ProductionRepo) Create(ctx context.Context, op *entity.ProductionOperation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_operations (`+productionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		op.ID, op.CompanyID, op.Name, nullable(op.EmployeeID), op.OutputProductID, op.OutputQuantity,
		op.OutputCost, op.AdditionalCosts, op.Date, op.Notes, op.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production operation: %w", err)
	}
	for _, m := range op.Materials {
		_, err := r.q.Exec(ctx, `
			INSERT INTO production_materials (id, production_id, product_id, quantity_used, cost_per_unit)
			VALUES ($1, $2, $3, $4, $5)`,
			m.ID, op.ID, m.ProductID, m.QuantityUsed, m.CostPerUnit,
		)
		if err != nil {
			return fmt.Errorf("insert production material: %w", err)
		}
	}
	return nil
}

func scanProduction(row pgx.Row) (*entity.ProductionOperation, error) {
	var op entity.ProductionOperation
	var employeeID *string
	err := row.Scan(&op.ID, &op.CompanyID, &op.Name, &employeeID, &op.OutputProductID, &op.OutputQuantity,
		&op.OutputCost, &op.AdditionalCosts, &op.Date, &op.Notes, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	op.EmployeeID = deref(employeeID)
	return &op, nil
}

func (r *ProductionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.ProductionOperation, error) {
	if !validID(id) {
		return nil, nil
	}
	op, err := scanProduction(r.q.QueryRow(ctx,
		`SELECT `+productionColumns+` FROM production_operations WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production operation: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, production_id, product_id, quantity_used, cost_per_unit
		FROM production_materials WHERE production_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list production materials: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.ProductionMaterial
		if err := rows.Scan(&m.ID, &m.ProductionID, &m.ProductID, &m.QuantityUsed, &m.CostPerUnit); err != nil {
			return nil, fmt.Errorf("scan production material: %w", err)
		}
		op.Materials = append(op.Materials, m)
	}
	return op, rows.Err()
}

func (r *ProductionRepo) List(ctx context.Context, companyID string, from, to *time.Time) ([]*entity.ProductionOperation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productionColumns+` FROM production_operations
		WHERE company_id = $1 AND ($2::date IS NULL OR date >= $2) AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC`,
		companyID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("list production operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOperation
	for rows.Next() {
		op, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production operation: %w", err)
		}
		list = append(list, op)
	}
	return list, rows.Err()
}

func (r *ProductionRepo) CountByOutputProduct(ctx context.Context, companyID, productID string) (int, error) {
	if !validID(productID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM production_operations WHERE company_id = $1 AND output_product_id = $2`,
		companyID, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count production by output: %w", err)
	}
	return n, nil
}

// Delete elimina la operación; los materiales caen por ON DELETE CASCADE.
func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM production_operations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production operation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// dateArg convierte un límite de rango opcional en argumento DATE (nil = sin límite).
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return entity.DateOf(*t)
}
