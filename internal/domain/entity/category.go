package entity

import "time"

// Category representa una categoría de productos (nombre único por empresa).
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Unit representa una unidad de medida (nombre único por empresa).
type Unit struct {
	ID        string
	CompanyID string
	Name      string
	ShortName string
	CreatedAt time.Time
}
