package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleEmploye = "employe"
)

// User representa un usuario del sistema. El flujo de stock solo lo usa para
// estampar asientos y órdenes; la autorización se decide antes, en el middleware.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Role         string // admin, employe
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
