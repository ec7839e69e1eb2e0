package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(d *dataset) error {
		if p, ok := d.products[id]; ok && p.CompanyID == companyID {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el store en exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(d *dataset) error {
		cur, ok := d.products[p.ID]
		if !ok || cur.CompanyID != p.CompanyID {
			return domain.ErrNotFound
		}
		next := *p
		next.CurrentStock = cur.CurrentStock
		next.AvgCost = cur.AvgCost
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = time.Now()
		d.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock, avgCost decimal.Decimal) error {
	return r.v.write(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CurrentStock = stock
		p.AvgCost = avgCost
		p.UpdatedAt = time.Now()
		d.products[id] = p
		return nil
	})
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.CompanyID == companyID {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ProductRepo) CountByCategory(_ context.Context, companyID, categoryID string) (int, error) {
	n := 0
	err := r.v.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.CompanyID == companyID && p.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductRepo) CountByUnit(_ context.Context, companyID, unitID string) (int, error) {
	n := 0
	err := r.v.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.CompanyID == companyID && p.UnitID == unitID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// Delete elimina el producto, sus movimientos y los renglones de materiales que lo referencian.
// Devuelve domain.ErrConflict si es la salida de alguna operación de producción.
func (r *ProductRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.write(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok || p.CompanyID != companyID {
			return domain.ErrNotFound
		}
		for _, op := range d.productions {
			if op.OutputProductID == id {
				return domain.ErrConflict
			}
		}
		for mid, row := range d.movements {
			if row.m.ProductID == id {
				delete(d.movements, mid)
			}
		}
		for opID, op := range d.productions {
			kept := make([]entity.ProductionMaterial, 0, len(op.Materials))
			for _, m := range op.Materials {
				if m.ProductID != id {
					kept = append(kept, m)
				}
			}
			if len(kept) != len(op.Materials) {
				op.Materials = kept
				d.productions[opID] = op
			}
		}
		delete(d.products, id)
		return nil
	})
}
