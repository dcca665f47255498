package context

import (
	"authsvc/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyClaims is the key for storing the validated token claims in echo.Context.
const KeyClaims ContextKey = "claims"

// SetClaims stores the claims of an authenticated request in echo.Context.
func SetClaims(c echo.Context, claims *entity.Claims) {
	c.Set(string(KeyClaims), claims)
}

// GetClaims returns the claims stored by the auth middleware.
func GetClaims(c echo.Context) (*entity.Claims, bool) {
	claims, ok := c.Get(string(KeyClaims)).(*entity.Claims)

	return claims, ok && claims != nil
}
