package auth

import (
	"time"

	"authsvc/config"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the JWT payload: the registered sub/iat/exp plus the account email.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The signing secret is fixed for the lifetime of the process.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Token.Secret == "" {
		return nil, errors.Wrap(config.ErrInvalidConfig, "token secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Token.Secret),
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given subject and email that expires ttlMinutes from now.
func (s *jwtService) Issue(claims *entity.Claims, ttlMinutes int) (string, error) {
	if ttlMinutes <= 0 {
		return "", errors.Errorf("token ttl must be positive, got %d minutes", ttlMinutes)
	}
	if claims == nil || claims.Subject == "" {
		return "", errors.New("token subject is required")
	}

	now := s.now()
	payload := tokenClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	claims.IssuedAt = payload.IssuedAt.Time
	claims.ExpiresAt = payload.ExpiresAt.Time

	return signed, nil
}

// Validate parses a token, accepting only HS256 signatures by our secret that carry an unexpired exp.
func (s *jwtService) Validate(tokenString string) (*entity.Claims, error) {
	payload := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, payload, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}
	if payload.Subject == "" {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token has no subject")
	}

	claims := &entity.Claims{
		Subject:   payload.Subject,
		Email:     payload.Email,
		ExpiresAt: payload.ExpiresAt.Time,
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}

	return claims, nil
}
