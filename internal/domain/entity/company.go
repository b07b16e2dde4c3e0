package entity

import "time"

// Company representa una empresa registrada en el sistema (tenant).
// El NIT la identifica de forma única; el borrado es lógico (Active=false).
type Company struct {
	ID        string
	NIT       string // NIT colombiano, 9-15 dígitos (con o sin puntos/guiones al ingresar)
	Name      string
	Address   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deactivate marca la empresa como inactiva (soft delete).
func (c *Company) Deactivate(now time.Time) {
	c.Active = false
	c.UpdatedAt = now
}

// Activate reactiva la empresa.
func (c *Company) Activate(now time.Time) {
	c.Active = true
	c.UpdatedAt = now
}
