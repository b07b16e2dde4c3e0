package auth

import "github.com/litethinking/gestion-api/internal/domain/entity"

// Actor identifica al principal autenticado de un request (claims del JWT).
// Los casos de uso lo reciben para aplicar el control de acceso por empresa.
type Actor struct {
	UserID    string
	CompanyID string
	Kind      string // administrator, external
}

// IsAdmin informa si el actor tiene permisos globales.
func (a Actor) IsAdmin() bool {
	return a.Kind == entity.UserKindAdministrator
}

// CanAccessCompany informa si el actor puede leer/escribir registros de la
// empresa dada. Administradores siempre; externos solo la propia.
func (a Actor) CanAccessCompany(companyID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}
