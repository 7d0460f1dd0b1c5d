package auth

import (
	"testing"
	"time"

	"khanza/internal/domain"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("s3cret", 0)
	tok, err := m.Issue(domain.AdminIdentity{UserID: 7, Email: "admin@khanzarepaint.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	id, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(7), id.UserID)
	assert.Equal(t, "admin@khanzarepaint.com", id.Email)
	assert.Equal(t, domain.RoleAdmin, id.Role)
}

func TestParseExpired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	m := NewTokenManager("s3cret", time.Hour)
	m.Now = func() time.Time { return issued }
	tok, err := m.Issue(domain.AdminIdentity{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	m.Now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.Parse(tok)
	assert.True(t, domain.IsUnauthorized(err), "expired token must be unauthorized, got %v", err)
}

func TestParseRejectsWrongSecretAndAlg(t *testing.T) {
	m := NewTokenManager("s3cret", time.Hour)
	other := NewTokenManager("different", time.Hour)
	tok, err := other.Issue(domain.AdminIdentity{UserID: 1})
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.True(t, domain.IsUnauthorized(err))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = m.Parse("")
	assert.True(t, domain.IsUnauthorized(err))
}
