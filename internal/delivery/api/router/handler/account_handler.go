// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"authsvc/internal/delivery/api/response"
	deliverycontext "authsvc/internal/delivery/context"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"

	"github.com/labstack/echo/v4"
)

// credentialsRequest is the body of both /register and /login.
type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Register handles POST /register.
func (h *AccountHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokenResponse(output))
}

// Login handles POST /login.
func (h *AccountHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokenResponse(output))
}

// Me returns the identity asserted by the request's bearer token.
func (h *AccountHandler) Me(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return domainerrors.ErrTokenInvalid.WrapMessage("no claims on authenticated route")
	}

	return response.Success(c, http.StatusOK, response.IdentityResponse{
		Sub:   claims.Subject,
		Email: claims.Email,
		Exp:   claims.ExpiresAt.Unix(),
	})
}

// bindCredentials decodes and validates the request body before any flow logic runs.
func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	req := new(credentialsRequest)
	if err := c.Bind(req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}

	return req, nil
}

func toTokenResponse(output *usecase.TokenOutput) response.TokenResponse {
	return response.TokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
	}
}
