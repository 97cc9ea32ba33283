package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary datos públicos del principal en el login.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse tokens emitidos. ExpiresIn en segundos.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         UserSummary `json:"user"`
}

// RefreshRequest pide un nuevo access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// LogoutRequest opcionalmente revoca también el refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterClientRequest alta de un cliente por parte del staff.
type RegisterClientRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=30"`
	Password  string `json:"password" validate:"omitempty,min=8,max=72"`
}

// ClientResponse datos de contacto de un cliente.
type ClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegisterClientResponse incluye la contraseña temporal solo si fue generada.
type RegisterClientResponse struct {
	ClientResponse
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

// UpdateUserRequest cambios administrativos sobre un principal.
type UpdateUserRequest struct {
	Role      *string `json:"role" validate:"omitempty,oneof=admin analyst support viewer customer"`
	IsActive  *bool   `json:"is_active"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

// UserResponse principal completo (sin credenciales).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerSearchResult cliente con totales de compra.
type CustomerSearchResult struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	TotalOrders int    `json:"total_orders"`
	TotalSpent  string `json:"total_spent"`
}

// CustomerSearchQuery búsqueda de clientes por nombre, email o teléfono.
type CustomerSearchQuery struct {
	PageRequest
	Query string `query:"query"`
}
