package dto

import (
	"encoding/json"
	"time"
)

// InitiateCallRequest llamada saliente.
type InitiateCallRequest struct {
	CustomerID  string `json:"customer_id" validate:"omitempty,uuid"`
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	Notes       string `json:"notes"`
}

// SendSMSRequest SMS saliente.
type SendSMSRequest struct {
	CustomerID  string `json:"customer_id" validate:"omitempty,uuid"`
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	Message     string `json:"message" validate:"required,max=1600"`
}

// SendEmailRequest correo saliente.
type SendEmailRequest struct {
	CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
	To         string `json:"to" validate:"required,email"`
	Subject    string `json:"subject" validate:"required,max=255"`
	Body       string `json:"body" validate:"required"`
}

// SendSocialRequest mensaje en red social.
type SendSocialRequest struct {
	CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
	Platform   string `json:"platform" validate:"required,oneof=facebook instagram twitter linkedin"`
	Recipient  string `json:"recipient" validate:"required,max=255"`
	Message    string `json:"message" validate:"required"`
}

// MessageResponse comunicación registrada.
type MessageResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id,omitempty"`
	Channel      string          `json:"channel"`
	Direction    string          `json:"direction"`
	Recipient    string          `json:"recipient"`
	Subject      string          `json:"subject,omitempty"`
	Content      string          `json:"content"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	IsAIHandled  bool            `json:"is_ai_handled"`
	ResponseTime *int            `json:"response_time,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt    time.Time       `json:"created_at"`
}
