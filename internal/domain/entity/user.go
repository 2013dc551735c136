package entity

import "time"

// Roles válidos para User.
const (
	RoleClient = "client"
	RoleSales  = "sales"
	RoleAdmin  = "admin"
)

// ValidRole reporta si role es uno de los tres roles conocidos.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleSales || role == RoleAdmin
}

// User representa un usuario del sistema, vinculado a una identidad externa
// (proveedor de identidad). El perfil se crea por webhook en el primer sign-in.
type User struct {
	ID         string
	ExternalID string // id opaco del proveedor de identidad (único)
	Email      string
	Name       string
	Role       string // client, sales, admin — first-write-wins bajo reconciliación
	Country    string // código de país ISO-3166-1 alpha-2, best-effort, puede quedar vacío
	// ReferralCode código emitido a usuarios sales/admin para captar clientes.
	ReferralCode string
	// ReferredBy ID del usuario sales/admin bajo cuyo código se registró este cliente.
	ReferredBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsStaff reporta si el usuario es personal de la plataforma (no requiere Business).
func (u *User) IsStaff() bool {
	return u.Role == RoleSales || u.Role == RoleAdmin
}
