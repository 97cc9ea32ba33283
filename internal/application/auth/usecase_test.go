package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
	"github.com/jhoicas/engage-api/pkg/jwt"
)

var testJWT = JWTConfig{
	Secret:            "access-secret",
	RefreshSecret:     "refresh-secret",
	ExpMinutes:        15,
	RefreshExpMinutes: 60,
	Issuer:            "engage-test",
}

type memRevoker struct{ revoked map[string]time.Duration }

func (m *memRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.revoked[id] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.revoked[id]
	return ok, nil
}

func setup(t *testing.T) (*AuthUseCase, *memstore.Store, *memRevoker) {
	t.Helper()
	s := memstore.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	s.Users["u-admin"] = entity.User{ID: "u-admin", Email: "admin@example.com", PasswordHash: string(hash), FirstName: "Ada", LastName: "Admin", Role: entity.RoleAdmin, IsActive: true}
	s.Users["u-off"] = entity.User{ID: "u-off", Email: "off@example.com", PasswordHash: string(hash), Role: entity.RoleViewer, IsActive: false}
	rev := &memRevoker{revoked: map[string]time.Duration{}}
	return NewAuthUseCase(s.UserRepo(), rev, testJWT), s, rev
}

func TestLogin_OK(t *testing.T) {
	uc, _, _ := setup(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Admin@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, 15*60, res.ExpiresIn)
	assert.Equal(t, "Ada Admin", res.User.Name)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)

	sess, err := uc.Authenticate(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", sess.User.ID)
	assert.NotEmpty(t, sess.TokenID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := setup(t)
	cases := []dto.LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "s3cret-pass"},
		{Email: "off@example.com", Password: "s3cret-pass"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, in.Email)
	}
}

func TestRefresh(t *testing.T) {
	uc, _, _ := setup(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	out, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: res.RefreshToken})
	require.NoError(t, err)
	claims, err := jwt.Parse(testJWT.Secret, out.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", claims.UserID)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// un access token no sirve como refresh
	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: res.AccessToken})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticate_Fallas(t *testing.T) {
	uc, s, _ := setup(t)
	_, err := uc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	expired, err := jwt.Generate(testJWT.Secret, "u-admin", jwt.TypeAccess, testJWT.Issuer, -1)
	require.NoError(t, err)
	_, err = uc.Authenticate(context.Background(), expired.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// principal desactivado después de emitir el token
	tok, err := jwt.Generate(testJWT.Secret, "u-admin", jwt.TypeAccess, testJWT.Issuer, 5)
	require.NoError(t, err)
	u := s.Users["u-admin"]
	u.IsActive = false
	s.Users["u-admin"] = u
	_, err = uc.Authenticate(context.Background(), tok.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	ghost, err := jwt.Generate(testJWT.Secret, "ghost", jwt.TypeAccess, testJWT.Issuer, 5)
	require.NoError(t, err)
	_, err = uc.Authenticate(context.Background(), ghost.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogout_RevocaTokens(t *testing.T) {
	uc, _, rev := setup(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	sess, err := uc.Authenticate(context.Background(), res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), sess, dto.LogoutRequest{RefreshToken: res.RefreshToken}))
	assert.Len(t, rev.revoked, 2)

	_, err = uc.Authenticate(context.Background(), res.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: res.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRegisterClient(t *testing.T) {
	uc, s, _ := setup(t)
	res, err := uc.RegisterClient(context.Background(), dto.RegisterClientRequest{Email: "New@Example.com", FirstName: "Nia"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", res.Email)
	require.NotEmpty(t, res.TemporaryPassword)

	u := s.Users[res.ID]
	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(res.TemporaryPassword)))

	// con password propio no se devuelve temporal y puede loguearse
	res2, err := uc.RegisterClient(context.Background(), dto.RegisterClientRequest{Email: "own@example.com", FirstName: "Own", Password: "password-123"})
	require.NoError(t, err)
	assert.Empty(t, res2.TemporaryPassword)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "own@example.com", Password: "password-123"})
	assert.NoError(t, err)

	_, err = uc.RegisterClient(context.Background(), dto.RegisterClientRequest{Email: "new@example.com", FirstName: "Dup"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestGetClient_Visibilidad(t *testing.T) {
	uc, s, _ := setup(t)
	s.Users["c1"] = entity.User{ID: "c1", Email: "c1@example.com", FirstName: "Cleo", Phone: "555", Role: entity.RoleCustomer, IsActive: true}

	got, err := uc.GetClient(context.Background(), authz.Actor{ID: "c1", Role: entity.RoleCustomer}, "c1")
	require.NoError(t, err)
	assert.Equal(t, "555", got.Phone)

	_, err = uc.GetClient(context.Background(), authz.Actor{ID: "c2", Role: entity.RoleCustomer}, "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetClient(context.Background(), authz.Actor{ID: "u-admin", Role: entity.RoleAdmin}, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	uc, s, _ := setup(t)
	actor := authz.Actor{ID: "u-admin", Role: entity.RoleAdmin}
	role := entity.RoleAnalyst
	active := true

	out, err := uc.UpdateUser(context.Background(), actor, "u-off", dto.UpdateUserRequest{Role: &role, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAnalyst, out.Role)
	assert.True(t, s.Users["u-off"].IsActive)

	inactive := false
	_, err = uc.UpdateUser(context.Background(), actor, "u-admin", dto.UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "root"
	_, err = uc.UpdateUser(context.Background(), actor, "u-off", dto.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
