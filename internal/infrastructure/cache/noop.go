package cache

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
)

// Noop caché vacía: toda lectura es un miss. Se usa sin REDIS_ADDR o si Redis no responde al arrancar.
type Noop struct{}

func (Noop) Get(context.Context, string) (*dto.DashboardOverviewDTO, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, *dto.DashboardOverviewDTO) error { return nil }

func (Noop) Invalidate(context.Context, string) {}
