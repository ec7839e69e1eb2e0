package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.Invalid("quantity", "debe ser mayor que cero"), fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{&domain.StockShortageError{ProductID: "p"}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("tx: %w", &domain.StockShortageError{ProductID: "p"}), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{fmt.Errorf("%w: 55P03", domain.ErrResourceBusy), fiber.StatusServiceUnavailable, "RESOURCE_BUSY"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
