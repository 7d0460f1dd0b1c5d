package auth

import (
	"errors"
	"strings"
	"time"

	"khanza/internal/domain"

	jwt "github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies stateless HS256 admin tokens.
// There is no revocation list; a token stays valid until exp.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return TokenManager{Secret: []byte(secret), TTL: ttl}
}

func (m TokenManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m TokenManager) Issue(id domain.AdminIdentity) (string, error) {
	if len(m.Secret) == 0 {
		return "", errors.New("jwt secret kosong")
	}
	ttl := m.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := m.now()
	claims := Claims{
		UserID: int64(id.UserID),
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// Parse verifies signature and expiry and returns the embedded identity.
func (m TokenManager) Parse(tokenStr string) (domain.AdminIdentity, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return domain.AdminIdentity{}, domain.UnauthorizedError{Msg: "Token tidak ditemukan"}
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(m.Now))
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, opts...)
	if err != nil {
		return domain.AdminIdentity{}, domain.UnauthorizedError{Msg: "Token tidak valid atau kedaluwarsa", Err: err}
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return domain.AdminIdentity{}, domain.UnauthorizedError{Msg: "Token tidak valid atau kedaluwarsa"}
	}
	return domain.AdminIdentity{UserID: domain.ID(c.UserID), Email: c.Email, Role: c.Role}, nil
}
