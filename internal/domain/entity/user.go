package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleConductor = "conductor"
	RoleVendedor  = "vendedor"
)

// User representa una cuenta del sistema (administrador, conductor o vendedor).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Name         string
	Role         string // admin, conductor, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
