package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/bootstrap"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// api levanta el router completo sobre el backend en memoria.
type api struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	deps := bootstrap.RouterDeps(bootstrap.MemoryBackend(memory.NewStore()), bootstrap.Options{
		JWT:    auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		Logger: logger.Nop(),
	})
	app := fiber.New()
	apphttp.Router(app, deps)
	return &api{t: t, app: app}
}

func (a *api) do(method, path string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

// decode hace do y decodifica la respuesta exigiendo el status esperado.
func (a *api) decode(method, path string, body any, status int, out any) {
	a.t.Helper()
	code, b := a.do(method, path, body)
	require.Equal(a.t, status, code, string(b))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(b, out))
	}
}

// login registra una empresa y guarda el token.
func (a *api) login() {
	a.t.Helper()
	a.decode(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		CompanyName: "Taller", Login: "admin", Password: "secreto1",
	}, http.StatusCreated, nil)
	var out dto.LoginResponse
	a.decode(http.MethodPost, "/api/auth/login", dto.LoginRequest{Login: "admin", Password: "secreto1"}, http.StatusOK, &out)
	require.NotEmpty(a.t, out.Token)
	assert.Equal(a.t, "Taller", out.CompanyName)
	a.token = out.Token
}

func (a *api) createProduct(name, stock, cost string) dto.ProductResponse {
	a.t.Helper()
	var p dto.ProductResponse
	a.decode(http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name: name, InitialStock: decimal.RequireFromString(stock), InitialCost: decimal.RequireFromString(cost),
	}, http.StatusCreated, &p)
	return p
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAPI_RequiereToken(t *testing.T) {
	a := newAPI(t)
	code, body := a.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAPI_AuthErrores(t *testing.T) {
	a := newAPI(t)
	a.login()
	a.token = ""

	code, body := a.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{CompanyName: "Otra", Login: "ADMIN", Password: "secreto2"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, string(body), "DUPLICATE")

	code, body = a.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Login: "admin", Password: "malo"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, string(body), "UNAUTHORIZED")

	code, _ = a.do(http.MethodPost, "/api/auth/register", dto.RegisterRequest{CompanyName: "X", Login: "y", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_MovimientosYCostoPromedio(t *testing.T) {
	a := newAPI(t)
	a.login()
	p := a.createProduct("Acero", "100", "10")
	assert.True(t, p.CurrentStock.Equal(d("100")))

	a.decode(http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "in", Quantity: d("50"), UnitCost: d("20"),
	}, http.StatusCreated, nil)

	var got dto.ProductResponse
	a.decode(http.MethodGet, "/api/products/"+p.ID, nil, http.StatusOK, &got)
	assert.True(t, got.CurrentStock.Equal(d("150")))
	assert.True(t, got.AvgCost.Equal(d("13.33")), "avg %s", got.AvgCost)

	var out dto.MovementResponse
	a.decode(http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "out", Quantity: d("10"),
	}, http.StatusCreated, &out)
	assert.True(t, out.PricePerUnit.Equal(d("13.33")))

	code, body := a.do(http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "out", Quantity: d("1000"),
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	code, _ = a.do(http.MethodPost, "/api/movements", dto.RegisterMovementRequest{ProductID: p.ID, Type: "x", Quantity: d("1")})
	assert.Equal(t, http.StatusBadRequest, code)

	var list []dto.MovementResponse
	a.decode(http.MethodGet, "/api/movements?product_id="+p.ID, nil, http.StatusOK, &list)
	assert.Len(t, list, 3, "apertura + entrada + salida")

	code, _ = a.do(http.MethodGet, "/api/movements?type=foo", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_ProduccionCrearYEliminar(t *testing.T) {
	a := newAPI(t)
	a.login()
	mat := a.createProduct("Harina", "10", "2")
	out := a.createProduct("Pan", "0", "0")

	req := dto.CreateProductionRequest{
		Name: "Horneada", OutputProductID: out.ID, OutputQuantity: d("2"), AdditionalCosts: d("2"),
		Materials: []dto.ProductionMaterialRequest{{ProductID: mat.ID, QuantityUsed: d("4")}},
	}

	var preview dto.ProductionPreviewResponse
	a.decode(http.MethodPost, "/api/production/preview", req, http.StatusOK, &preview)
	assert.True(t, preview.MaterialsValid)
	assert.True(t, preview.Breakdown.CostPerUnit.Equal(d("5")))

	var created dto.CreateProductionResponse
	a.decode(http.MethodPost, "/api/production", req, http.StatusCreated, &created)
	assert.True(t, created.Breakdown.TotalCost.Equal(d("10")))

	var pan dto.ProductResponse
	a.decode(http.MethodGet, "/api/products/"+out.ID, nil, http.StatusOK, &pan)
	assert.True(t, pan.CurrentStock.Equal(d("2")))
	assert.True(t, pan.AvgCost.Equal(d("5")))

	code, body := a.do(http.MethodDelete, "/api/products/"+out.ID, nil)
	assert.Equal(t, http.StatusConflict, code, "no se borra un producto de salida")
	assert.Contains(t, string(body), "CONFLICT")

	code, _ = a.do(http.MethodGet, "/api/production/"+created.ID+"/pdf", nil)
	assert.Equal(t, http.StatusOK, code)

	var detail dto.ProductionResponse
	a.decode(http.MethodGet, "/api/production/"+created.ID, nil, http.StatusOK, &detail)
	assert.Len(t, detail.Materials, 1)

	var del dto.DeleteProductionResponse
	a.decode(http.MethodDelete, "/api/production/"+created.ID, nil, http.StatusOK, &del)
	assert.True(t, del.Success)
	assert.Equal(t, 1, del.MaterialsReturned)
	assert.Empty(t, del.Warning)

	var harina dto.ProductResponse
	a.decode(http.MethodGet, "/api/products/"+mat.ID, nil, http.StatusOK, &harina)
	assert.True(t, harina.CurrentStock.Equal(d("10")))

	code, _ = a.do(http.MethodDelete, "/api/production/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_ProduccionSinStock(t *testing.T) {
	a := newAPI(t)
	a.login()
	mat := a.createProduct("Harina", "1", "2")
	out := a.createProduct("Pan", "0", "0")

	code, body := a.do(http.MethodPost, "/api/production", dto.CreateProductionRequest{
		Name: "Horneada", OutputProductID: out.ID, OutputQuantity: d("2"),
		Materials: []dto.ProductionMaterialRequest{{ProductID: mat.ID, QuantityUsed: d("4")}},
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	var list []dto.ProductionResponse
	a.decode(http.MethodGet, "/api/production", nil, http.StatusOK, &list)
	assert.Empty(t, list)
}

func TestAPI_CatalogosYGastos(t *testing.T) {
	a := newAPI(t)
	a.login()

	var cats []dto.CategoryResponse
	a.decode(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)
	assert.Len(t, cats, 4, "categorías por defecto")
	var units []dto.UnitResponse
	a.decode(http.MethodGet, "/api/units", nil, http.StatusOK, &units)
	assert.Len(t, units, 6, "unidades por defecto")

	code, body := a.do(http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "materias PRIMAS"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, string(body), "DUPLICATE")

	var emp dto.EmployeeResponse
	a.decode(http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{Name: "Ana"}, http.StatusCreated, &emp)
	code, _ = a.do(http.MethodDelete, "/api/employees/"+emp.ID, nil)
	assert.Equal(t, http.StatusNoContent, code)

	var exp dto.ExpenseResponse
	a.decode(http.MethodPost, "/api/expenses", dto.CreateExpenseRequest{Category: "Luz", Amount: d("120.5")}, http.StatusCreated, &exp)
	code, _ = a.do(http.MethodPost, "/api/expenses", dto.CreateExpenseRequest{Category: "Luz", Amount: d("0")})
	assert.Equal(t, http.StatusBadRequest, code)

	var overview dto.DashboardOverviewDTO
	a.decode(http.MethodGet, "/api/dashboard/overview", nil, http.StatusOK, &overview)
	assert.True(t, overview.ExpensesLast30Days.Equal(d("120.5")))

	code, _ = a.do(http.MethodGet, "/api/dashboard/analytics?from=2024-05-10&to=2024-05-01", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.do(http.MethodGet, "/api/dashboard/analytics", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_ReporteExistencias(t *testing.T) {
	a := newAPI(t)
	a.login()
	a.createProduct("Acero", "5", "3")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stock.xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}
