package entity

import "time"

// Roles válidos para User.
const (
	RoleUsuario    = "usuario"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User perfil de un usuario: identidad, rol y saldo de puntos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // usuario, supervisor, admin
	Points       int64  // solo crece: los premios suman, no hay canje
	CreatedAt    time.Time
}

// IsReviewer indica si el usuario puede aprobar o rechazar precios.
func (u *User) IsReviewer() bool {
	return IsReviewerRole(u.Role)
}

// IsReviewerRole indica si role habilita la revisión de precios.
func IsReviewerRole(role string) bool {
	return role == RoleSupervisor || role == RoleAdmin
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleUsuario, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}
