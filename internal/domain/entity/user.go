package entity

import "time"

// Tipos de usuario.
const (
	UserKindAdministrator = "administrator"
	UserKindExternal      = "external"
)

// User representa un principal de autenticación.
// Los administradores pueden operar sobre cualquier empresa; los usuarios
// externos quedan limitados a los registros de su propia empresa.
type User struct {
	ID           string
	CompanyID    string // vacío solo para administradores
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca en texto plano después de persistir
	FirstName    string
	LastName     string
	Kind         string // administrator, external
	Active       bool
	LastAccessAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdministrator informa si el usuario tiene permisos globales.
func (u *User) IsAdministrator() bool {
	return u.Kind == UserKindAdministrator
}

// CanManageCompany informa si el usuario puede operar sobre la empresa dada.
func (u *User) CanManageCompany(companyID string) bool {
	if u.IsAdministrator() {
		return true
	}
	return u.CompanyID != "" && u.CompanyID == companyID
}

// FullName devuelve nombre y apellido, o el username si no están definidos.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
