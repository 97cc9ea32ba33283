package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
	"github.com/jhoicas/engage-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	RefreshSecret     string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// Session principal autenticado junto con el token que presentó.
type Session struct {
	User      *entity.User
	TokenID   string
	ExpiresAt time.Time
}

// Actor vista mínima del principal para los casos de uso.
func (s *Session) Actor() authz.Actor {
	return authz.Actor{ID: s.User.ID, Role: s.User.Role}
}

// AuthUseCase verificación de credenciales y sesiones: login, refresh, logout,
// alta de clientes y autenticación de cada request.
type AuthUseCase struct {
	userRepo repository.UserRepository
	revoker  ports.TokenRevoker
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. revoker puede ser nil (logout sin efecto).
func NewAuthUseCase(userRepo repository.UserRepository, revoker ports.TokenRevoker, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, revoker: revoker, jwtCfg: jwtCfg}
}

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)

// Login verifica email/password y emite access + refresh token.
// Usuario inexistente, inactivo o password incorrecto responden igual.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, user.ID, jwt.TypeRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    uc.jwtCfg.ExpMinutes * 60,
		User: dto.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName(),
			Role:  user.Role,
		},
	}, nil
}

// Refresh emite un nuevo access token para el principal del refresh token, sin pedir password.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	if strings.TrimSpace(in.RefreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token is required", domain.ErrInvalidInput)
	}
	claims, err := jwt.Parse(uc.jwtCfg.RefreshSecret, in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthenticated)
	}
	if err := uc.ensureNotRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	user, err := uc.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access.Token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// Authenticate valida el bearer token (firma, expiración, tipo, revocación) y carga el principal.
// Cualquier falla es ErrUnauthenticated; no tiene efectos.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: no token provided", domain.ErrUnauthenticated)
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.TypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthenticated)
	}
	if err := uc.ensureNotRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	user, err := uc.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	s := &Session{User: user, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Logout revoca el access token de la sesión y, si se envía, el refresh token.
func (uc *AuthUseCase) Logout(ctx context.Context, s *Session, in dto.LogoutRequest) error {
	if uc.revoker == nil {
		return nil
	}
	if err := uc.revoke(ctx, s.TokenID, s.ExpiresAt); err != nil {
		return err
	}
	if in.RefreshToken == "" {
		return nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.RefreshSecret, in.RefreshToken, jwt.TypeRefresh)
	if err != nil || claims.UserID != s.User.ID {
		// refresh ajeno o inválido: no hay nada que revocar
		return nil
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return uc.revoke(ctx, claims.ID, exp)
}

// RegisterClient crea un principal con rol customer. Sin password se genera uno temporal
// que se devuelve una única vez.
func (uc *AuthUseCase) RegisterClient(ctx context.Context, in dto.RegisterClientRequest) (*dto.RegisterClientResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	password := in.Password
	var temporary string
	if password == "" {
		temporary, err = temporaryPassword()
		if err != nil {
			return nil, err
		}
		password = temporary
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         entity.RoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterClientResponse{
		ClientResponse:    toClientResponse(user),
		TemporaryPassword: temporary,
	}, nil
}

// GetClient datos de contacto de un principal: él mismo o staff de servicio.
func (uc *AuthUseCase) GetClient(ctx context.Context, actor authz.Actor, clientID string) (*dto.ClientResponse, error) {
	if !authz.CanActFor(actor.ID, actor.Role, clientID) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: client not found", domain.ErrNotFound)
	}
	out := toClientResponse(user)
	return &out, nil
}

// UpdateUser cambia rol, estado o datos de perfil. Un admin no puede desactivarse a sí mismo.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, actor authz.Actor, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role", domain.ErrInvalidInput)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if !*in.IsActive && actor.ID == user.ID {
			return nil, fmt.Errorf("%w: cannot deactivate yourself", domain.ErrInvalidInput)
		}
		user.IsActive = *in.IsActive
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) activeUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("%w: user not found or inactive", domain.ErrUnauthenticated)
	}
	return user, nil
}

func (uc *AuthUseCase) ensureNotRevoked(ctx context.Context, tokenID string) error {
	if uc.revoker == nil || tokenID == "" {
		return nil
	}
	revoked, err := uc.revoker.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
	}
	return nil
}

func (uc *AuthUseCase) revoke(ctx context.Context, tokenID string, exp time.Time) error {
	ttl := time.Until(exp)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func temporaryPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func toClientResponse(u *entity.User) dto.ClientResponse {
	return dto.ClientResponse{ID: u.ID, Name: u.FullName(), Email: u.Email, Phone: u.Phone}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
