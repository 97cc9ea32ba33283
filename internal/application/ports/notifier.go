package ports

import "context"

// Notification envío saliente por un canal.
type Notification struct {
	Channel   string
	Recipient string // teléfono, email o handle según el canal
	Subject   string
	Body      string
}

// Delivery acuse del proveedor.
type Delivery struct {
	ProviderID string
	Status     string
}

// Notifier define el puerto de salida para un canal de comunicación (sms, email, call, social).
type Notifier interface {
	Send(ctx context.Context, n Notification) (*Delivery, error)
}
