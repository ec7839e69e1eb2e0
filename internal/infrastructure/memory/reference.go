package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// EmployeeRepo implementa repository.EmployeeRepository.
type EmployeeRepo struct{ v view }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.v.write(func(d *dataset) error {
		d.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.read(func(d *dataset) error {
		if e, ok := d.employees[id]; ok && e.CompanyID == companyID {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.v.read(func(d *dataset) error {
		for _, e := range d.employees {
			if e.CompanyID == companyID {
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// Delete desvincula al empleado de movimientos y operaciones (ON DELETE SET NULL).
func (r *EmployeeRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.write(func(d *dataset) error {
		e, ok := d.employees[id]
		if !ok || e.CompanyID != companyID {
			return domain.ErrNotFound
		}
		for mid, row := range d.movements {
			if row.m.EmployeeID == id {
				row.m.EmployeeID = ""
				d.movements[mid] = row
			}
		}
		for opID, op := range d.productions {
			if op.EmployeeID == id {
				op.EmployeeID = ""
				d.productions[opID] = op
			}
		}
		delete(d.employees, id)
		return nil
	})
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ v view }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.write(func(d *dataset) error {
		for _, existing := range d.categories {
			if existing.CompanyID == c.CompanyID && strings.EqualFold(existing.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(d *dataset) error {
		if c, ok := d.categories[id]; ok && c.CompanyID == companyID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.read(func(d *dataset) error {
		for _, c := range d.categories {
			if c.CompanyID == companyID {
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CategoryRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.write(func(d *dataset) error {
		c, ok := d.categories[id]
		if !ok || c.CompanyID != companyID {
			return domain.ErrNotFound
		}
		for _, p := range d.products {
			if p.CategoryID == id {
				return domain.ErrConflict
			}
		}
		delete(d.categories, id)
		return nil
	})
}

// UnitRepo implementa repository.UnitRepository.
type UnitRepo struct{ v view }

func (r *UnitRepo) Create(_ context.Context, u *entity.Unit) error {
	return r.v.write(func(d *dataset) error {
		for _, existing := range d.units {
			if existing.CompanyID == u.CompanyID && strings.EqualFold(existing.Name, u.Name) {
				return domain.ErrDuplicate
			}
		}
		d.units[u.ID] = *u
		return nil
	})
}

func (r *UnitRepo) GetByID(_ context.Context, companyID, id string) (*entity.Unit, error) {
	var out *entity.Unit
	err := r.v.read(func(d *dataset) error {
		if u, ok := d.units[id]; ok && u.CompanyID == companyID {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UnitRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	err := r.v.read(func(d *dataset) error {
		for _, u := range d.units {
			if u.CompanyID == companyID {
				out = append(out, &u)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *UnitRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.write(func(d *dataset) error {
		u, ok := d.units[id]
		if !ok || u.CompanyID != companyID {
			return domain.ErrNotFound
		}
		for _, p := range d.products {
			if p.UnitID == id {
				return domain.ErrConflict
			}
		}
		delete(d.units, id)
		return nil
	})
}

// ExpenseRepo implementa repository.ExpenseRepository.
type ExpenseRepo struct{ v view }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	return r.v.write(func(d *dataset) error {
		d.expenses[e.ID] = *e
		return nil
	})
}

func (r *ExpenseRepo) List(_ context.Context, companyID string, from, to *time.Time) ([]*entity.Expense, error) {
	var out []*entity.Expense
	err := r.v.read(func(d *dataset) error {
		for _, e := range d.expenses {
			if e.CompanyID == companyID && inRange(e.Date, from, to) {
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *ExpenseRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.write(func(d *dataset) error {
		e, ok := d.expenses[id]
		if !ok || e.CompanyID != companyID {
			return domain.ErrNotFound
		}
		delete(d.expenses, id)
		return nil
	})
}
