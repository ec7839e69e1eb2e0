package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
	errorResponder
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// GetOverview devuelve el resumen operativo.
// GET /api/dashboard/overview
//
// Respuesta: DashboardOverviewDTO (product_count, inventory_value, expenses_last_30_days,
// production_last_30_days, in_stock, low_stock, recent_movements).
// Se sirve desde caché si está disponible; las escrituras la invalidan.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Overview(c.UserContext(), companyID)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// GetAnalytics godoc
// @Summary      Analítica del período: movimientos por día, producción por empleado, gastos y márgenes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD). Default: to - 30 días."
// @Param        to    query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.AnalyticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Analytics(c.UserContext(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}
