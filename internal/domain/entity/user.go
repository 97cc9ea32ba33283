package entity

import "time"

// Roles válidos para User. El rol es la única fuente para las decisiones de autorización.
const (
	RoleAdmin    = "admin"
	RoleAnalyst  = "analyst"
	RoleSupport  = "support"
	RoleViewer   = "viewer"
	RoleCustomer = "customer"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleSupport, RoleViewer, RoleCustomer:
		return true
	}
	return false
}

// IsStaff roles internos (todo menos customer).
func IsStaff(r string) bool {
	return ValidRole(r) && r != RoleCustomer
}

// User representa un principal del sistema. Nunca se borra: se desactiva con IsActive=false.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
