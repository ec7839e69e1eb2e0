package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee empleado que registra movimientos u operaciones de producción.
type Employee struct {
	ID         string
	CompanyID  string
	Name       string
	Position   string
	HourlyRate decimal.Decimal
	CreatedAt  time.Time
}
