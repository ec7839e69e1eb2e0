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

var (
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepo)(nil)
)

// deleteScoped borra una fila de la empresa; FK violada -> ErrConflict, 0 filas -> ErrNotFound.
func deleteScoped(ctx context.Context, q Querier, table, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (id, company_id, name, position, hourly_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.CompanyID, e.Name, e.Position, e.HourlyRate, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	if !validID(id) {
		return nil, nil
	}
	var e entity.Employee
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, position, hourly_rate, created_at
		FROM employees WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&e.ID, &e.CompanyID, &e.Name, &e.Position, &e.HourlyRate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, position, hourly_rate, created_at
		FROM employees WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Position, &e.HourlyRate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina al empleado; las referencias quedan en NULL por ON DELETE SET NULL.
func (r *EmployeeRepo) Delete(ctx context.Context, companyID, id string) error {
	return deleteScoped(ctx, r.q, "employees", companyID, id)
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, company_id, name, description, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.CompanyID, c.Name, c.Description, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	var c entity.Category
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, description, created_at FROM categories WHERE company_id = $1 AND id = $2`,
		companyID, id).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, description, created_at FROM categories WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, companyID, id string) error {
	return deleteScoped(ctx, r.q, "categories", companyID, id)
}

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO units (id, company_id, name, short_name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.CompanyID, u.Name, u.ShortName, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Unit, error) {
	if !validID(id) {
		return nil, nil
	}
	var u entity.Unit
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, short_name, created_at FROM units WHERE company_id = $1 AND id = $2`,
		companyID, id).Scan(&u.ID, &u.CompanyID, &u.Name, &u.ShortName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, short_name, created_at FROM units WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Name, &u.ShortName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Delete(ctx context.Context, companyID, id string) error {
	return deleteScoped(ctx, r.q, "units", companyID, id)
}

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expenses (id, company_id, category, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.CompanyID, e.Category, e.Amount, e.Description, e.Date, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) List(ctx context.Context, companyID string, from, to *time.Time) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, category, amount, description, date, created_at FROM expenses
		WHERE company_id = $1 AND ($2::date IS NULL OR date >= $2) AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC`,
		companyID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Category, &e.Amount, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) Delete(ctx context.Context, companyID, id string) error {
	return deleteScoped(ctx, r.q, "expenses", companyID, id)
}
