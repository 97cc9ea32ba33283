package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token. Un refresh nunca se acepta como access y viceversa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongType el token es válido pero de otro tipo (refresh presentado como access, etc.).
var ErrWrongType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El rol NO viaja en el token: el principal se recarga de la DB en cada request.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Type   string `json:"typ"`
}

// Issued token firmado junto a su identificador y expiración (para revocación).
type Issued struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// Generate genera un token JWT firmado HS256 para userID con el tipo indicado.
func Generate(secret, userID, tokenType, issuer string, expMinutes int) (*Issued, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: userID,
		Type:   tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("jwt: firmar: %w", err)
	}
	return &Issued{Token: signed, ID: claims.ID, ExpiresAt: exp}, nil
}

// Parse valida firma, expiración y tipo y devuelve los claims.
func Parse(secret, tokenString, tokenType string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != tokenType {
		return nil, ErrWrongType
	}
	return claims, nil
}
