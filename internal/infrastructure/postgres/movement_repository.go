package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, company_id, product_id, type, quantity, price_per_unit, total_cost,
	employee_id, production_id, date, notes, created_at`

// MovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity, m.PricePerUnit, m.TotalCost,
		nullable(m.EmployeeID), nullable(m.ProductionID), m.Date, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List arma el WHERE con los filtros presentes; el orden es fecha desc y luego created_at desc.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.ProductID != "" && !validID(f.ProductID) {
		return nil, nil
	}
	where := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.From != nil {
		add("date >= $%d", entity.DateOf(*f.From))
	}
	if f.To != nil {
		add("date <= $%d", entity.DateOf(*f.To))
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY date DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var employeeID, productionID *string
	err := row.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.PricePerUnit, &m.TotalCost,
		&employeeID, &productionID, &m.Date, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.EmployeeID = deref(employeeID)
	m.ProductionID = deref(productionID)
	return &m, nil
}

func (r *MovementRepo) DeleteByProduction(ctx context.Context, productionID string) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE production_id = $1`, productionID)
	if err != nil {
		return 0, fmt.Errorf("delete production movements: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
