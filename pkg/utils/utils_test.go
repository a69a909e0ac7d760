package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	s, err := NewJWTSigner("secret")
	require.NoError(t, err)

	tok, err := s.Generate(Claims{UserID: "u1", Name: "Demo", Email: "demo@eshop"}, time.Hour)
	require.NoError(t, err)

	c, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Demo", c.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.ExpiresAt, 5*time.Second)
}

func TestJWTSigner_Rejects(t *testing.T) {
	s, _ := NewJWTSigner("secret")
	other, _ := NewJWTSigner("other")

	tok, err := other.Generate(Claims{UserID: "u1"}, time.Hour)
	require.NoError(t, err)
	_, err = s.Validate(tok)
	assert.Error(t, err, "wrong secret")

	expired, err := s.Generate(Claims{UserID: "u1"}, -time.Minute)
	require.NoError(t, err)
	_, err = s.Validate(expired)
	assert.Error(t, err, "expired")

	noSub, err := s.Generate(Claims{}, time.Hour)
	require.NoError(t, err)
	_, err = s.Validate(noSub)
	assert.Error(t, err, "no subject")

	_, err = s.Validate("garbage")
	assert.Error(t, err)
}

func TestNewJWTSigner_EmptySecret(t *testing.T) {
	_, err := NewJWTSigner("")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$25.00", FormatMoney(decimal.RequireFromString("25")))
	assert.Equal(t, "$8.50", FormatMoney(decimal.RequireFromString("8.5")))
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("x", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.True(t, strings.HasSuffix(Truncate(".NET Bot Black Hoodie", 8), "…"))
	assert.Equal(t, "", Truncate("abc", 0))
}
