package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// inRange compara fechas de negocio (sin hora), límites inclusivos.
func inRange(date time.Time, from, to *time.Time) bool {
	day := entity.DateOf(date)
	if from != nil && day.Before(entity.DateOf(*from)) {
		return false
	}
	if to != nil && day.After(entity.DateOf(*to)) {
		return false
	}
	return true
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ v view }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		d.seq++
		d.movements[m.ID] = movementRow{m: *m, seq: d.seq}
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var rows []movementRow
	err := r.v.read(func(d *dataset) error {
		for _, row := range d.movements {
			m := row.m
			if m.CompanyID != f.CompanyID {
				continue
			}
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if !inRange(m.Date, f.From, f.To) {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.Date.Equal(rows[j].m.Date) {
			return rows[i].m.Date.After(rows[j].m.Date)
		}
		return rows[i].seq > rows[j].seq
	})
	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		m := row.m
		out = append(out, &m)
	}
	return out, nil
}

func (r *MovementRepo) DeleteByProduction(_ context.Context, productionID string) (int, error) {
	n := 0
	err := r.v.write(func(d *dataset) error {
		for id, row := range d.movements {
			if row.m.ProductionID == productionID {
				delete(d.movements, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
