package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
)

const company = "c1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var today = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

type mapCache struct {
	data map[string]*dto.DashboardOverviewDTO
	sets int
}

func (c *mapCache) Get(_ context.Context, companyID string) (*dto.DashboardOverviewDTO, bool, error) {
	v, ok := c.data[companyID]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, companyID string, v *dto.DashboardOverviewDTO) error {
	c.data[companyID] = v
	c.sets++
	return nil
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Units().Create(ctx, &entity.Unit{ID: "u1", CompanyID: company, Name: "Kilogramo", ShortName: "kg"}))
	for _, p := range []entity.Product{
		{ID: "A", CompanyID: company, Name: "Harina", UnitID: "u1", CurrentStock: d("100"), AvgCost: d("13.33"), MinStock: d("10"), SellingPrice: d("20")},
		{ID: "B", CompanyID: company, Name: "Levadura", CurrentStock: d("2"), AvgCost: d("5"), MinStock: d("5")},
		{ID: "C", CompanyID: company, Name: "Pan", CurrentStock: d("0"), AvgCost: d("0"), SellingPrice: d("3")},
	} {
		p := p
		require.NoError(t, st.Products().Create(ctx, &p))
	}
	require.NoError(t, st.Employees().Create(ctx, &entity.Employee{ID: "e1", CompanyID: company, Name: "Ana"}))
	require.NoError(t, st.Expenses().Create(ctx, &entity.Expense{ID: "x1", CompanyID: company, Category: "renta", Amount: d("1000"), Date: today.AddDate(0, 0, -3)}))
	require.NoError(t, st.Expenses().Create(ctx, &entity.Expense{ID: "x2", CompanyID: company, Category: "luz", Amount: d("150"), Date: today.AddDate(0, 0, -10)}))
	require.NoError(t, st.Expenses().Create(ctx, &entity.Expense{ID: "x3", CompanyID: company, Category: "renta", Amount: d("1000"), Date: today.AddDate(0, 0, -45)}))
	require.NoError(t, st.Productions().Create(ctx, &entity.ProductionOperation{
		ID: "op1", CompanyID: company, EmployeeID: "e1", OutputProductID: "C", OutputQuantity: d("3"), OutputCost: d("208.30"), Date: today.AddDate(0, 0, -1),
	}))
	require.NoError(t, st.Productions().Create(ctx, &entity.ProductionOperation{
		ID: "op2", CompanyID: company, OutputProductID: "C", OutputQuantity: d("1"), OutputCost: d("50"), Date: today.AddDate(0, 0, -2),
	}))
	for i, m := range []entity.StockMovement{
		{Type: entity.MovementTypeIn, ProductID: "A", Quantity: d("100"), Date: today.AddDate(0, 0, -2)},
		{Type: entity.MovementTypeOut, ProductID: "A", Quantity: d("10"), Date: today.AddDate(0, 0, -2)},
		{Type: entity.MovementTypeOut, ProductID: "A", Quantity: d("5"), Date: today.AddDate(0, 0, -2)},
		{Type: entity.MovementTypeIn, ProductID: "B", Quantity: d("2"), Date: today.AddDate(0, 0, -20)},
	} {
		m.ID = string(rune('a' + i))
		m.CompanyID = company
		require.NoError(t, st.Movements().Create(ctx, &m))
	}
	return st
}

func newUC(st *memory.Store, cache OverviewCache) *DashboardUseCase {
	uc := NewDashboardUseCase(Repos{
		Products: st.Products(), Movements: st.Movements(), Production: st.Productions(),
		Expenses: st.Expenses(), Employees: st.Employees(), Categories: st.Categories(), Units: st.Units(),
	}, cache, nil)
	uc.now = func() time.Time { return today.Add(15 * time.Hour) }
	return uc
}

func TestOverview(t *testing.T) {
	st := seeded(t)
	cache := &mapCache{data: map[string]*dto.DashboardOverviewDTO{}}
	uc := newUC(st, cache)

	o, err := uc.Overview(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 3, o.ProductCount)
	assert.True(t, o.InventoryValue.Equal(d("1343")), "valor %s", o.InventoryValue) // 1333 + 10
	assert.True(t, o.ExpensesLast30Days.Equal(d("1150")))
	assert.Equal(t, 2, o.ProductionLast30Day)
	assert.Len(t, o.InStock, 2)
	require.Len(t, o.LowStock, 2) // B (2 <= 5) y C (0 <= 0)
	assert.Equal(t, "kg", o.InStock[0].Unit)
	assert.Len(t, o.RecentMovements, 3)

	// segunda llamada servida desde la caché
	require.NoError(t, st.Products().Delete(context.Background(), company, "B"))
	again, err := uc.Overview(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 3, again.ProductCount)
	assert.Equal(t, 1, cache.sets)
}

func TestAnalytics(t *testing.T) {
	uc := newUC(seeded(t), nil)
	a, err := uc.Analytics(context.Background(), company, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-20", a.From)
	assert.Equal(t, "2024-05-20", a.To)

	require.Len(t, a.MovementsByDay, 3)
	assert.Equal(t, "2024-04-30", a.MovementsByDay[0].Date)
	assert.Equal(t, "out", a.MovementsByDay[2].Type)
	assert.True(t, a.MovementsByDay[2].Quantity.Equal(d("15")))

	require.Len(t, a.OutputByEmployee, 2)
	assert.Equal(t, "Ana", a.OutputByEmployee[0].Name)
	assert.Equal(t, unassignedEmployee, a.OutputByEmployee[1].Name)

	require.Len(t, a.ExpensesByCategory, 2)
	assert.Equal(t, "renta", a.ExpensesByCategory[0].Category)
	assert.True(t, a.ExpensesByCategory[0].Amount.Equal(d("1000")))

	require.Len(t, a.Margins, 1)
	assert.True(t, a.Margins[0].Margin.Equal(d("6.67")))
	assert.True(t, a.Margins[0].MarginPercent.Equal(d("33.35")))

	assert.True(t, a.Summary.TotalExpenses.Equal(d("1150")))
	assert.True(t, a.Summary.ProductionCosts.Equal(d("258.30")))
}

func TestAnalytics_RangoInvalido(t *testing.T) {
	uc := newUC(seeded(t), nil)
	_, err := uc.Analytics(context.Background(), company, "2024-05-10", "2024-05-01")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Analytics(context.Background(), company, "mayo", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
