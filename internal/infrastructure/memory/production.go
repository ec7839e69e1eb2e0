package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionRepo implementa repository.ProductionRepository.
type ProductionRepo struct{ v view }

func (r *ProductionRepo) Create(_ context.Context, op *entity.ProductionOperation) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.productions[op.ID]; ok {
			return domain.ErrDuplicate
		}
		stored := *op
		stored.Materials = append([]entity.ProductionMaterial(nil), op.Materials...)
		d.productions[op.ID] = stored
		return nil
	})
}

func (r *ProductionRepo) GetByID(_ context.Context, companyID, id string) (*entity.ProductionOperation, error) {
	var out *entity.ProductionOperation
	err := r.v.read(func(d *dataset) error {
		if op, ok := d.productions[id]; ok && op.CompanyID == companyID {
			op.Materials = append([]entity.ProductionMaterial(nil), op.Materials...)
			out = &op
		}
		return nil
	})
	return out, err
}

func (r *ProductionRepo) List(_ context.Context, companyID string, from, to *time.Time) ([]*entity.ProductionOperation, error) {
	var out []*entity.ProductionOperation
	err := r.v.read(func(d *dataset) error {
		for _, op := range d.productions {
			if op.CompanyID != companyID || !inRange(op.Date, from, to) {
				continue
			}
			op.Materials = nil
			out = append(out, &op)
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

func (r *ProductionRepo) CountByOutputProduct(_ context.Context, companyID, productID string) (int, error) {
	n := 0
	err := r.v.read(func(d *dataset) error {
		for _, op := range d.productions {
			if op.CompanyID == companyID && op.OutputProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductionRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.productions[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.productions, id)
		return nil
	})
}
