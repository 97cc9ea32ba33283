package dto

import "time"

// CreateTicketRequest alta de ticket. Priority por defecto medium.
type CreateTicketRequest struct {
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"max=100"`
	Priority    string `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// UpdateTicketStatusRequest cambio de estado (admin/support).
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

// AddTicketMessageRequest mensaje nuevo.
type AddTicketMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// TicketListQuery filtros del listado.
type TicketListQuery struct {
	PageRequest
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

// TicketMessageResponse mensaje de ticket.
type TicketMessageResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketResponse ticket con sus mensajes (solo en detalle).
type TicketResponse struct {
	ID           string                  `json:"id"`
	UserID       string                  `json:"user_id"`
	UserEmail    string                  `json:"user_email,omitempty"`
	Subject      string                  `json:"subject"`
	Description  string                  `json:"description"`
	Category     string                  `json:"category"`
	Priority     string                  `json:"priority"`
	Status       string                  `json:"status"`
	MessageCount int                     `json:"message_count"`
	Messages     []TicketMessageResponse `json:"messages,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// FAQRequest alta/edición de FAQ.
type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category" validate:"max=100"`
	IsActive *bool  `json:"is_active"`
}

// FAQListQuery filtro por categoría.
type FAQListQuery struct {
	PageRequest
	Category string `query:"category"`
}

// FAQResponse pregunta frecuente.
type FAQResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
