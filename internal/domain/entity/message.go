package entity

import (
	"encoding/json"
	"time"
)

// Canales de comunicación.
const (
	ChannelCall      = "call"
	ChannelSMS       = "sms"
	ChannelEmail     = "email"
	ChannelFacebook  = "facebook"
	ChannelInstagram = "instagram"
	ChannelTwitter   = "twitter"
	ChannelLinkedIn  = "linkedin"
)

// SocialChannels plataformas sociales soportadas.
var SocialChannels = []string{ChannelFacebook, ChannelInstagram, ChannelTwitter, ChannelLinkedIn}

// IsSocialChannel indica si c es una red social soportada.
func IsSocialChannel(c string) bool {
	for _, s := range SocialChannels {
		if s == c {
			return true
		}
	}
	return false
}

// Dirección y estado de un mensaje.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	MessageStatusInitiated = "initiated"
	MessageStatusSent      = "sent"
	MessageStatusFailed    = "failed"
)

// Message registro de una comunicación por cualquier canal.
type Message struct {
	ID           string
	CustomerID   string // vacío si el destinatario no es un principal conocido
	Channel      string
	Direction    string
	Recipient    string
	Subject      string
	Content      string
	Status       string
	Priority     string
	IsAIHandled  bool
	ResponseTime *int // segundos
	Metadata     json.RawMessage
	CreatedBy    string
	CreatedAt    time.Time
}
