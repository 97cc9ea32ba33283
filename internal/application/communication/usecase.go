package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
	"github.com/jhoicas/engage-api/pkg/logger"
)

// Notifiers un Notifier por canal. Social atiende todas las redes sociales.
type Notifiers struct {
	Call   ports.Notifier
	SMS    ports.Notifier
	Email  ports.Notifier
	Social ports.Notifier
}

func (n Notifiers) forChannel(channel string) ports.Notifier {
	switch {
	case channel == entity.ChannelCall:
		return n.Call
	case channel == entity.ChannelSMS:
		return n.SMS
	case channel == entity.ChannelEmail:
		return n.Email
	case entity.IsSocialChannel(channel):
		return n.Social
	}
	return nil
}

// UseCase envíos multicanal: cada envío pasa por el Notifier del canal y queda registrado
// como mensaje saliente (sent, o failed si el Notifier falla).
type UseCase struct {
	messages  repository.MessageRepository
	users     repository.UserRepository
	notifiers Notifiers
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de comunicación.
func NewUseCase(messages repository.MessageRepository, users repository.UserRepository, notifiers Notifiers, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{messages: messages, users: users, notifiers: notifiers, log: log.Component("communication")}
}

// InitiateCall registra una llamada saliente (estado initiated).
func (uc *UseCase) InitiateCall(ctx context.Context, actor authz.Actor, in dto.InitiateCallRequest) (*dto.MessageResponse, error) {
	return uc.send(ctx, actor, in.CustomerID, ports.Notification{
		Channel:   entity.ChannelCall,
		Recipient: in.PhoneNumber,
		Body:      in.Notes,
	})
}

// SendSMS envía un SMS.
func (uc *UseCase) SendSMS(ctx context.Context, actor authz.Actor, in dto.SendSMSRequest) (*dto.MessageResponse, error) {
	return uc.send(ctx, actor, in.CustomerID, ports.Notification{
		Channel:   entity.ChannelSMS,
		Recipient: in.PhoneNumber,
		Body:      in.Message,
	})
}

// SendEmail envía un correo.
func (uc *UseCase) SendEmail(ctx context.Context, actor authz.Actor, in dto.SendEmailRequest) (*dto.MessageResponse, error) {
	return uc.send(ctx, actor, in.CustomerID, ports.Notification{
		Channel:   entity.ChannelEmail,
		Recipient: in.To,
		Subject:   in.Subject,
		Body:      in.Body,
	})
}

// SendSocial publica un mensaje directo en la plataforma indicada.
func (uc *UseCase) SendSocial(ctx context.Context, actor authz.Actor, in dto.SendSocialRequest) (*dto.MessageResponse, error) {
	if !entity.IsSocialChannel(in.Platform) {
		return nil, fmt.Errorf("%w: unsupported platform %q", domain.ErrInvalidInput, in.Platform)
	}
	return uc.send(ctx, actor, in.CustomerID, ports.Notification{
		Channel:   in.Platform,
		Recipient: in.Recipient,
		Body:      in.Message,
	})
}

// List log de un grupo de canales, más reciente primero.
func (uc *UseCase) List(ctx context.Context, channels []string, q dto.PageRequest) (*dto.PageResponse[dto.MessageResponse], error) {
	page := q.Normalize()
	list, total, err := uc.messages.List(ctx, repository.MessageFilter{Channels: channels}, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Get mensaje del grupo de canales indicado.
func (uc *UseCase) Get(ctx context.Context, channels []string, id string) (*dto.MessageResponse, error) {
	m, err := uc.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !inChannels(channels, m.Channel) {
		return nil, fmt.Errorf("%w: message not found", domain.ErrNotFound)
	}
	out := toMessageResponse(m)
	return &out, nil
}

func (uc *UseCase) send(ctx context.Context, actor authz.Actor, customerID string, n ports.Notification) (*dto.MessageResponse, error) {
	if customerID != "" {
		u, err := uc.users.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("%w: customer not found", domain.ErrNotFound)
		}
	}
	notifier := uc.notifiers.forChannel(n.Channel)
	if notifier == nil {
		return nil, fmt.Errorf("no notifier configured for channel %s", n.Channel)
	}

	m := &entity.Message{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Channel:    n.Channel,
		Direction:  entity.DirectionOutbound,
		Recipient:  n.Recipient,
		Subject:    n.Subject,
		Content:    n.Body,
		Priority:   "normal",
		CreatedBy:  actor.ID,
	}
	meta := map[string]string{}
	delivery, err := notifier.Send(ctx, n)
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("channel", n.Channel).Msg("envío fallido")
		m.Status = entity.MessageStatusFailed
		meta["error"] = err.Error()
	case n.Channel == entity.ChannelCall:
		m.Status = entity.MessageStatusInitiated
	default:
		m.Status = entity.MessageStatusSent
	}
	if delivery != nil {
		meta["provider_id"] = delivery.ProviderID
		meta["provider_status"] = delivery.Status
	}
	if m.Metadata, err = json.Marshal(meta); err != nil {
		return nil, err
	}
	m.CreatedAt = time.Now()
	if err := uc.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMessageResponse(m)
	return &out, nil
}

func inChannels(channels []string, c string) bool {
	for _, ch := range channels {
		if ch == c {
			return true
		}
	}
	return false
}

func toMessageResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		Channel:      m.Channel,
		Direction:    m.Direction,
		Recipient:    m.Recipient,
		Subject:      m.Subject,
		Content:      m.Content,
		Status:       m.Status,
		Priority:     m.Priority,
		IsAIHandled:  m.IsAIHandled,
		ResponseTime: m.ResponseTime,
		Metadata:     m.Metadata,
		CreatedAt:    m.CreatedAt,
	}
}
