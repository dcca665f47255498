package auth

import (
	"strings"
	"testing"
	"time"

	"authsvc/config"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_token_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T, now time.Time) *jwtService {
	t.Helper()

	cfg := &config.Config{Token: config.TokenConfig{Secret: testSecret, TTLMinutes: 30}}
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	js := svc.(*jwtService)
	js.now = func() time.Time { return now }

	return js
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestJWTService(t, now)

	claims := &entity.Claims{Subject: "6f1c2b9e-3f0a-4d6e-9a52-1f3c7d2b8e40", Email: "a@x.io"}
	token, err := svc.Issue(claims, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, got.Subject)
	assert.Equal(t, "a@x.io", got.Email)
	assert.Equal(t, now.Unix(), got.IssuedAt.Unix())
	assert.Equal(t, now.Unix()+30*60, got.ExpiresAt.Unix())
}

func TestJWTService_PayloadShape(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestJWTService(t, now)

	token, err := svc.Issue(&entity.Claims{Subject: "sub-1", Email: "a@x.io"}, 1)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Header["alg"])

	payload := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "sub-1", payload["sub"])
	assert.Equal(t, "a@x.io", payload["email"])
	assert.EqualValues(t, now.Unix()+60, payload["exp"])
	assert.EqualValues(t, now.Unix(), payload["iat"])
}

func TestJWTService_IssueRejectsBadInput(t *testing.T) {
	svc := newTestJWTService(t, time.Now())

	_, err := svc.Issue(&entity.Claims{Subject: "sub-1"}, 0)
	assert.Error(t, err)

	_, err = svc.Issue(&entity.Claims{Subject: "sub-1"}, -5)
	assert.Error(t, err)

	_, err = svc.Issue(&entity.Claims{}, 30)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	issuer := newTestJWTService(t, issuedAt)

	token, err := issuer.Issue(&entity.Claims{Subject: "sub-1", Email: "a@x.io"}, 30)
	require.NoError(t, err)

	validator := newTestJWTService(t, issuedAt.Add(31*time.Minute))
	claims, err := validator.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	svc := newTestJWTService(t, now)
	exp := jwt.NewNumericDate(now.Add(time.Hour))

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "clearly-not-a-jwt-token-format",
		},
		{
			name:  "wrong secret",
			token: sign(jwt.SigningMethodHS256, []byte("another-secret"), jwt.RegisteredClaims{Subject: "sub-1", ExpiresAt: exp}),
		},
		{
			name:  "other hmac algorithm",
			token: sign(jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{Subject: "sub-1", ExpiresAt: exp}),
		},
		{
			name:  "alg none",
			token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: "sub-1", ExpiresAt: exp}),
		},
		{
			name:  "missing exp",
			token: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "sub-1"}),
		},
		{
			name:  "missing sub",
			token: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{ExpiresAt: exp}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
		})
	}
}
