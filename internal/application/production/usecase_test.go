package production_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

const company = "c1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	st       *memory.Store
	recorder *appinv.RegisterMovementUseCase
	uc       *production.UseCase
	logs     *bytes.Buffer
}

// newFixture arma el escenario base: A 100@10 + 50@20 (promedio 13.33), B 20@5, C vacío.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: id, CompanyID: company, Name: id}))
	}
	recorder := appinv.NewRegisterMovementUseCase(st.TxRunner(), st.Movements(), nil)
	for _, in := range []struct{ id, qty, cost string }{{"A", "100", "10"}, {"A", "50", "20"}, {"B", "20", "5"}} {
		_, err := recorder.RegisterMovement(ctx, appinv.MovementInputDTO{
			CompanyID: company, ProductID: in.id, Type: entity.MovementTypeIn, Quantity: d(in.qty), UnitCost: d(in.cost),
		})
		require.NoError(t, err)
	}
	logs := &bytes.Buffer{}
	uc := production.NewUseCase(st.TxRunner(), recorder, st.Productions(), st.Products(), nil, logger.NewWithWriter(logs, "info"))
	return &fixture{st: st, recorder: recorder, uc: uc, logs: logs}
}

func (f *fixture) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.st.Products().GetByID(context.Background(), company, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) movementCount(t *testing.T) int {
	t.Helper()
	movs, err := f.st.Movements().List(context.Background(), repository.MovementFilter{CompanyID: company})
	require.NoError(t, err)
	return len(movs)
}

func standardRequest() dto.CreateProductionRequest {
	return dto.CreateProductionRequest{
		Name:            "Lote C",
		OutputProductID: "C",
		OutputQuantity:  d("3"),
		AdditionalCosts: d("50"),
		Materials: []dto.ProductionMaterialRequest{
			{ProductID: "A", QuantityUsed: d("10")},
			{ProductID: "B", QuantityUsed: d("5")},
		},
	}
}

func TestCreate_CostosYStock(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Create(context.Background(), company, standardRequest())
	require.NoError(t, err)

	assert.True(t, res.Breakdown.MaterialsCost.Equal(d("158.30")), "materiales %s", res.Breakdown.MaterialsCost)
	assert.True(t, res.Breakdown.TotalCost.Equal(d("208.30")))
	assert.True(t, res.Breakdown.CostPerUnit.Equal(d("69.43")))

	assert.True(t, f.product(t, "A").CurrentStock.Equal(d("140")))
	assert.True(t, f.product(t, "B").CurrentStock.Equal(d("15")))
	c := f.product(t, "C")
	assert.True(t, c.CurrentStock.Equal(d("3")))
	assert.True(t, c.AvgCost.Equal(d("69.43")), "avg C %s", c.AvgCost)
	// promedio de materiales sin cambio
	assert.True(t, f.product(t, "A").AvgCost.Equal(d("13.33")))

	op, err := f.uc.Get(context.Background(), company, res.ID)
	require.NoError(t, err)
	assert.Len(t, op.Materials, 2)
	assert.True(t, op.OutputCost.Equal(d("208.30")))

	movs, err := f.st.Movements().List(context.Background(), repository.MovementFilter{CompanyID: company})
	require.NoError(t, err)
	tagged := 0
	for _, m := range movs {
		if m.ProductionID == res.ID {
			tagged++
		}
	}
	assert.Equal(t, 3, tagged)
}

func TestCreate_FaltanteRechazaTodo(t *testing.T) {
	f := newFixture(t)
	before := f.movementCount(t)

	req := standardRequest()
	req.Materials[1].QuantityUsed = d("25") // B solo tiene 20
	_, err := f.uc.Create(context.Background(), company, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var shortage *domain.StockShortageError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, "B", shortage.ProductID)

	assert.True(t, f.product(t, "A").CurrentStock.Equal(d("150")))
	assert.True(t, f.product(t, "B").CurrentStock.Equal(d("20")))
	assert.True(t, f.product(t, "C").CurrentStock.IsZero())
	assert.Equal(t, before, f.movementCount(t))
	ops, err := f.uc.List(context.Background(), company, "", "")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestCreate_MaterialRepetidoSeAgrega(t *testing.T) {
	f := newFixture(t)
	req := standardRequest()
	req.Materials = []dto.ProductionMaterialRequest{
		{ProductID: "B", QuantityUsed: d("12")},
		{ProductID: "B", QuantityUsed: d("12")},
	}
	_, err := f.uc.Create(context.Background(), company, req)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, f.product(t, "B").CurrentStock.Equal(d("20")))
}

func TestCreate_CostoUnitarioExplicito(t *testing.T) {
	f := newFixture(t)
	req := standardRequest()
	cost := d("12")
	req.Materials[0].UnitCost = &cost
	res, err := f.uc.Create(context.Background(), company, req)
	require.NoError(t, err)
	// 10*12 + 5*5 = 145; + 50 = 195; /3 = 65
	assert.True(t, res.Breakdown.MaterialsCost.Equal(d("145")))
	assert.True(t, res.Breakdown.CostPerUnit.Equal(d("65")))

	// el renglón de material y su movimiento de salida registran el mismo costo
	op, err := f.uc.Get(context.Background(), company, res.ID)
	require.NoError(t, err)
	costs := map[string]dto.ProductionMaterialResponse{}
	for _, m := range op.Materials {
		costs[m.ProductID] = m
	}
	for _, id := range []string{"A", "B"} {
		movs, err := f.st.Movements().List(context.Background(), repository.MovementFilter{
			CompanyID: company, ProductID: id, Type: entity.MovementTypeOut,
		})
		require.NoError(t, err)
		require.Len(t, movs, 1)
		assert.Equal(t, res.ID, movs[0].ProductionID)
		assert.True(t, movs[0].PricePerUnit.Equal(costs[id].CostPerUnit), "%s: precio %s", id, movs[0].PricePerUnit)
		assert.True(t, movs[0].TotalCost.Equal(costs[id].Cost), "%s: total %s", id, movs[0].TotalCost)
	}
	assert.True(t, costs["A"].Cost.Equal(d("120")))
	// el promedio de A no cambia por valorizar la salida a otro costo
	assert.True(t, f.product(t, "A").AvgCost.Equal(d("13.33")))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	mutate := []func(r *dto.CreateProductionRequest){
		func(r *dto.CreateProductionRequest) { r.Name = "" },
		func(r *dto.CreateProductionRequest) { r.Name = "   " },
		func(r *dto.CreateProductionRequest) { r.OutputQuantity = d("0") },
		func(r *dto.CreateProductionRequest) { r.AdditionalCosts = d("-1") },
		func(r *dto.CreateProductionRequest) { r.Materials = nil },
		func(r *dto.CreateProductionRequest) { r.Materials[0].QuantityUsed = d("0") },
		func(r *dto.CreateProductionRequest) { r.Materials[0].ProductID = "C" },
		func(r *dto.CreateProductionRequest) { r.Date = "ayer" },
	}
	for i, m := range mutate {
		req := standardRequest()
		m(&req)
		_, err := f.uc.Create(context.Background(), company, req)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "caso %d: %v", i, err)
	}

	req := standardRequest()
	req.OutputProductID = "Z"
	_, err := f.uc.Create(context.Background(), company, req)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.Create(context.Background(), "", standardRequest())
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// el nombre se guarda sin espacios alrededor
	req = standardRequest()
	req.Name = "  Lote C  "
	res, err := f.uc.Create(context.Background(), company, req)
	require.NoError(t, err)
	op, err := f.uc.Get(context.Background(), company, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lote C", op.Name)
}

func TestDelete_RestauraStock(t *testing.T) {
	f := newFixture(t)
	before := f.movementCount(t)
	res, err := f.uc.Create(context.Background(), company, standardRequest())
	require.NoError(t, err)

	out, err := f.uc.Delete(context.Background(), company, res.ID)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.MaterialsReturned)
	assert.True(t, out.OutputRemoved.Equal(d("3")))
	assert.Empty(t, out.Warning)

	assert.True(t, f.product(t, "A").CurrentStock.Equal(d("150")))
	assert.True(t, f.product(t, "B").CurrentStock.Equal(d("20")))
	assert.True(t, f.product(t, "C").CurrentStock.IsZero())
	assert.Equal(t, before, f.movementCount(t))

	_, err = f.uc.Get(context.Background(), company, res.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_SalidaInsuficienteAvisa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, company, standardRequest())
	require.NoError(t, err)

	// se vendieron 2 de las 3 unidades producidas
	_, err = f.recorder.RegisterMovement(ctx, appinv.MovementInputDTO{
		CompanyID: company, ProductID: "C", Type: entity.MovementTypeOut, Quantity: d("2"),
	})
	require.NoError(t, err)

	out, err := f.uc.Delete(ctx, company, res.ID)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, out.OutputRemoved.Equal(d("1")))
	assert.Contains(t, out.Warning, "solo se pudieron retirar 1 de 3")
	assert.True(t, f.product(t, "C").CurrentStock.IsZero())
	assert.True(t, f.product(t, "A").CurrentStock.Equal(d("150")))
	assert.Contains(t, f.logs.String(), `"level":"warn"`)
	assert.Contains(t, f.logs.String(), res.ID)
}

func TestDelete_NoExisteOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Create(context.Background(), company, standardRequest())
	require.NoError(t, err)

	_, err = f.uc.Delete(context.Background(), "otra", res.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.Delete(context.Background(), company, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, f.product(t, "C").CurrentStock.Equal(d("3")))
}

func TestPreview_NoEscribe(t *testing.T) {
	f := newFixture(t)
	before := f.movementCount(t)
	req := standardRequest()
	req.Name = ""
	req.Materials[1].QuantityUsed = d("30")

	p, err := f.uc.Preview(context.Background(), company, req)
	require.NoError(t, err)
	assert.False(t, p.MaterialsValid)
	require.Len(t, p.Materials, 2)
	assert.True(t, p.Materials[0].Enough)
	assert.False(t, p.Materials[1].Enough)
	// 10*13.33 + 30*5 = 283.30; + 50 = 333.30
	assert.True(t, p.Breakdown.TotalCost.Equal(d("333.30")))
	assert.Equal(t, before, f.movementCount(t))
}

func TestToResponse_CostoPorUnidad(t *testing.T) {
	r := production.ToResponse(&entity.ProductionOperation{
		OutputQuantity: d("3"), OutputCost: d("208.30"),
		Materials: []entity.ProductionMaterial{{ProductID: "A", QuantityUsed: d("10"), CostPerUnit: d("13.33")}},
	})
	assert.True(t, r.CostPerUnit.Equal(d("69.43")))
	assert.True(t, r.Materials[0].Cost.Equal(d("133.30")))
}
