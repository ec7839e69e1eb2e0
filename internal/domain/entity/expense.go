package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto de la empresa. Category es texto libre (renta, servicios, salarios...).
type Expense struct {
	ID          string
	CompanyID   string
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
