package communication

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var agent = authz.Actor{ID: "sup-1", Role: entity.RoleSupport}

type recordingNotifier struct {
	sent []ports.Notification
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, n ports.Notification) (*ports.Delivery, error) {
	r.sent = append(r.sent, n)
	if r.err != nil {
		return nil, r.err
	}
	return &ports.Delivery{ProviderID: "prov-1", Status: "queued"}, nil
}

func setup() (*UseCase, *memstore.Store, *recordingNotifier) {
	s := memstore.New()
	s.Users["c1"] = entity.User{ID: "c1", Email: "c1@example.com", Role: entity.RoleCustomer, IsActive: true}
	n := &recordingNotifier{}
	uc := NewUseCase(s.MessageRepo(), s.UserRepo(), Notifiers{Call: n, SMS: n, Email: n, Social: n}, nil)
	return uc, s, n
}

func TestSendEmail_Registra(t *testing.T) {
	uc, s, n := setup()
	out, err := uc.SendEmail(context.Background(), agent, dto.SendEmailRequest{CustomerID: "c1", To: "c1@example.com", Subject: "Hi", Body: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, entity.MessageStatusSent, out.Status)
	assert.Equal(t, entity.DirectionOutbound, out.Direction)
	require.Len(t, n.sent, 1)
	assert.Equal(t, "Hi", n.sent[0].Subject)
	require.Len(t, s.Messages, 1)
	assert.JSONEq(t, `{"provider_id":"prov-1","provider_status":"queued"}`, string(s.Messages[0].Metadata))
}

func TestInitiateCall_Estado(t *testing.T) {
	uc, _, _ := setup()
	out, err := uc.InitiateCall(context.Background(), agent, dto.InitiateCallRequest{PhoneNumber: "+15550100"})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusInitiated, out.Status)
	assert.Equal(t, entity.ChannelCall, out.Channel)
}

func TestSend_FallaDelNotifierQuedaRegistrada(t *testing.T) {
	uc, s, n := setup()
	n.err = errors.New("smtp down")
	out, err := uc.SendSMS(context.Background(), agent, dto.SendSMSRequest{PhoneNumber: "+15550100", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusFailed, out.Status)
	require.Len(t, s.Messages, 1)
	assert.Contains(t, string(s.Messages[0].Metadata), "smtp down")
}

func TestSend_ClienteInexistente(t *testing.T) {
	uc, s, _ := setup()
	_, err := uc.SendSMS(context.Background(), agent, dto.SendSMSRequest{CustomerID: "ghost", PhoneNumber: "1", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Messages)
}

func TestListYGetPorCanal(t *testing.T) {
	uc, _, _ := setup()
	call, err := uc.InitiateCall(context.Background(), agent, dto.InitiateCallRequest{PhoneNumber: "1"})
	require.NoError(t, err)
	_, err = uc.SendSocial(context.Background(), agent, dto.SendSocialRequest{Platform: entity.ChannelTwitter, Recipient: "@x", Message: "hey"})
	require.NoError(t, err)
	_, err = uc.SendSocial(context.Background(), agent, dto.SendSocialRequest{Platform: entity.ChannelLinkedIn, Recipient: "x", Message: "hey"})
	require.NoError(t, err)

	social, err := uc.List(context.Background(), entity.SocialChannels, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, social.Total)

	got, err := uc.Get(context.Background(), []string{entity.ChannelCall}, call.ID)
	require.NoError(t, err)
	assert.Equal(t, call.ID, got.ID)

	_, err = uc.Get(context.Background(), []string{entity.ChannelSMS}, call.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SendSocial(context.Background(), agent, dto.SendSocialRequest{Platform: "myspace", Recipient: "x", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
