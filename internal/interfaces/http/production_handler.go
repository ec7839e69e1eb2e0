package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// ProductionHandler maneja las operaciones de producción (protegido).
type ProductionHandler struct {
	uc *production.UseCase
	errorResponder
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase, log *logger.Logger) *ProductionHandler {
	return &ProductionHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Registrar operación de producción
// @Description  Consume los materiales al costo promedio y da entrada al producto de salida al costo unitario
//
//	resultante. Si falta stock de cualquier material no se registra nada.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "Operación"
// @Success      201   {object}  dto.CreateProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Previsualizar costos de una operación sin registrarla
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "Operación"
// @Success      200   {object}  dto.ProductionPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production/preview [post]
func (h *ProductionHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar operaciones de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}   dto.ProductionResponse
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.UserContext(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener operación con sus materiales
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.ProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar operación revirtiendo su efecto en el stock
// @Description  Devuelve los materiales y retira el producto de salida. Si ya no hay stock suficiente de la
//
//	salida se retira lo disponible y la respuesta incluye un warning.
//
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.DeleteProductionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Delete(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(out)
}
