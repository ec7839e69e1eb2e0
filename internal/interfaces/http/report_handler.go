package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/report"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler sirve los reportes descargables.
type ReportHandler struct {
	uc *report.UseCase
	errorResponder
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// ProductionPDF GET /api/production/:id/pdf
func (h *ReportHandler) ProductionPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	b, name, err := h.uc.ProductionSheetPDF(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(b)
}

// StockXLSX GET /api/reports/stock.xlsx
func (h *ReportHandler) StockXLSX(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	b, err := h.uc.StockWorkbook(c.UserContext(), companyID)
	if err != nil {
		return h.write(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="existencias.xlsx"`)
	return c.Send(b)
}
