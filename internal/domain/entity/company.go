package entity

import "time"

// Company representa una organización/tenant del sistema. Su ID es la clave de partición
// (company_id) de todas las consultas.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
