package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/picourse/api/internal/model"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	accessTTL  = 30 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload. Role travels with the token so requests can
// be authorized without a user lookup.
type Claims struct {
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
	Kind   Kind       `json:"typ"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token pair as returned by login and refresh.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue returns a fresh access/refresh pair for the principal.
func (m *Manager) Issue(principal model.Principal) (Pair, error) {
	access, err := m.sign(principal, KindAccess, accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := m.sign(principal, KindRefresh, refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) sign(principal model.Principal, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: principal.ID,
		Role:   principal.Role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Parse verifies the signature, expiry and token kind.
func (m *Manager) Parse(raw string, want Kind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Kind != want {
		return nil, fmt.Errorf("token is %q, want %q", claims.Kind, want)
	}
	return claims, nil
}
