package entity

import "time"

// Estados y prioridades de ticket.
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"

	TicketPriorityHigh   = "high"
	TicketPriorityMedium = "medium"
	TicketPriorityLow    = "low"
)

// SupportTicket ticket de soporte. Visible para su dueño o para admin/support.
type SupportTicket struct {
	ID           string
	UserID       string
	UserEmail    string // solo lectura (JOIN)
	Subject      string
	Description  string
	Category     string
	Priority     string
	Status       string
	MessageCount int // solo lectura
	Messages     []SupportMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupportMessage mensaje dentro de un ticket; se listan en orden ascendente.
type SupportMessage struct {
	ID         string
	TicketID   string
	SenderID   string
	SenderName string // solo lectura (JOIN)
	Message    string
	CreatedAt  time.Time
}

// FAQ pregunta frecuente pública.
type FAQ struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
