package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/report"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
)

const company = "c1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePDF struct{ got *report.ProductionSheet }

func (f *fakePDF) RenderProductionSheet(_ context.Context, s *report.ProductionSheet) ([]byte, error) {
	f.got = s
	return []byte("%PDF"), nil
}

type fakeXLSX struct {
	company string
	lines   []report.StockLine
	err     error
}

func (f *fakeXLSX) RenderStockWorkbook(_ context.Context, companyName string, lines []report.StockLine) ([]byte, error) {
	f.company, f.lines = companyName, lines
	return []byte("xlsx"), f.err
}

type fixture struct {
	uc   *report.UseCase
	pdf  *fakePDF
	xlsx *fakeXLSX
	opID string
}

// newFixture: harina 10@2 (kg), pan vacío; una operación consume 4 kg de harina para 2 panes con 2 de costos extra.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Companies().Create(ctx, &entity.Company{ID: company, Name: "Panadería"}))
	require.NoError(t, st.Units().Create(ctx, &entity.Unit{ID: "u1", CompanyID: company, Name: "Kilogramo", ShortName: "kg"}))
	require.NoError(t, st.Categories().Create(ctx, &entity.Category{ID: "k1", CompanyID: company, Name: "Materias primas"}))
	require.NoError(t, st.Employees().Create(ctx, &entity.Employee{ID: "e1", CompanyID: company, Name: "Ana"}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: "harina", CompanyID: company, Name: "harina", UnitID: "u1", CategoryID: "k1", MinStock: d("8")}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: "pan", CompanyID: company, Name: "Pan"}))

	recorder := appinv.NewRegisterMovementUseCase(st.TxRunner(), st.Movements(), nil)
	_, err := recorder.RegisterMovement(ctx, appinv.MovementInputDTO{
		CompanyID: company, ProductID: "harina", Type: entity.MovementTypeIn, Quantity: d("10"), UnitCost: d("2"),
	})
	require.NoError(t, err)
	prod := production.NewUseCase(st.TxRunner(), recorder, st.Productions(), st.Products(), nil, nil)
	res, err := prod.Create(ctx, company, dto.CreateProductionRequest{
		Name: "Horneada", EmployeeID: "e1", OutputProductID: "pan", OutputQuantity: d("2"), AdditionalCosts: d("2"),
		Materials: []dto.ProductionMaterialRequest{{ProductID: "harina", QuantityUsed: d("4")}},
	})
	require.NoError(t, err)

	f := &fixture{pdf: &fakePDF{}, xlsx: &fakeXLSX{}, opID: res.ID}
	f.uc = report.NewUseCase(report.Repos{
		Companies:  st.Companies(),
		Products:   st.Products(),
		Production: st.Productions(),
		Employees:  st.Employees(),
		Categories: st.Categories(),
		Units:      st.Units(),
	}, f.pdf, f.xlsx)
	return f
}

func TestProductionSheetPDF(t *testing.T) {
	f := newFixture(t)
	b, name, err := f.uc.ProductionSheetPDF(context.Background(), company, f.opID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	assert.Contains(t, name, "produccion-")

	s := f.pdf.got
	require.NotNil(t, s)
	assert.Equal(t, "Panadería", s.CompanyName)
	assert.Equal(t, "Ana", s.EmployeeName)
	assert.Equal(t, "Pan", s.OutputProduct)
	assert.True(t, s.MaterialsCost.Equal(d("8")))
	assert.True(t, s.TotalCost.Equal(d("10")))
	assert.True(t, s.CostPerUnit.Equal(d("5")))
	require.Len(t, s.Materials, 1)
	assert.Equal(t, "harina", s.Materials[0].Product)
	assert.Equal(t, "kg", s.Materials[0].Unit)
}

func TestProductionSheet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.uc.ProductionSheetPDF(context.Background(), company, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = f.uc.ProductionSheetPDF(context.Background(), "otra", f.opID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockWorkbook(t *testing.T) {
	f := newFixture(t)
	b, err := f.uc.StockWorkbook(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), b)
	assert.Equal(t, "Panadería", f.xlsx.company)

	require.Len(t, f.xlsx.lines, 2)
	harina := f.xlsx.lines[0]
	assert.Equal(t, "harina", harina.Name, "orden alfabético sin distinguir mayúsculas")
	assert.Equal(t, "Materias primas", harina.Category)
	assert.Equal(t, "kg", harina.Unit)
	assert.True(t, harina.Stock.Equal(d("6")))
	assert.True(t, harina.StockValue.Equal(d("12")))
	assert.True(t, harina.LowStock)

	pan := f.xlsx.lines[1]
	assert.True(t, pan.Stock.Equal(d("2")))
	assert.True(t, pan.AvgCost.Equal(d("5")))
	assert.False(t, pan.LowStock)
}

func TestStockWorkbook_RenderError(t *testing.T) {
	f := newFixture(t)
	f.xlsx.err = errors.New("disk full")
	_, err := f.uc.StockWorkbook(context.Background(), company)
	assert.ErrorContains(t, err, "disk full")
}
