package dto

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// DateLayout formato de fechas de negocio en la API (sin hora).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseDate interpreta una fecha de negocio. Cadena vacía devuelve la fecha cero.
func ParseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "formato esperado AAAA-MM-DD")
	}
	return t, nil
}

// ParseOptionalDate como ParseDate pero devuelve nil para cadena vacía (filtros de rango).
func ParseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate formatea una fecha de negocio.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
