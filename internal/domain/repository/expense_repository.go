package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	// List devuelve gastos en el rango (inclusive), fecha desc.
	List(ctx context.Context, companyID string, from, to *time.Time) ([]*entity.Expense, error)
	Delete(ctx context.Context, companyID, id string) error
}
