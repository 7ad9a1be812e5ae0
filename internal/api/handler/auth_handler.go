package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplane/commerce-api/internal/api/metrics"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// AuthHandler exposes the credential lifecycle: register, login, email
// verification, and the forgot/reset-password flow.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new account and sends the verification mail.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/users/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ack, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: ack.Message})
}

// Login authenticates credentials and returns a bearer token. An
// unverified account gets a 200 with a message and no token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return err
	}

	if result.Pending() {
		metrics.LoginsTotal.WithLabelValues("pending_verification").Inc()
		return c.JSON(http.StatusOK, loginResponse{Message: result.Message})
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{AccessToken: result.AccessToken})
}

// VerifyEmail consumes the emailed verification link.
//
// @Summary      Verify an email address
// @Tags         auth
// @Produce      json
// @Param        id     path      string  true  "User id"
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/users/verify-email/{id}/{token} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	ack, err := h.auth.VerifyEmail(c.Request().Context(), c.Param("id"), c.Param("token"))
	if err != nil {
		metrics.EmailVerificationsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.EmailVerificationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: ack.Message})
}

// ForgotPassword issues a fresh reset token and mails the reset link.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ack, err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("request", "error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("request", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: ack.Message})
}

// ValidateResetLink checks a reset link without consuming the token, so
// the client can show the reset form only for live links.
//
// @Summary      Validate a password reset link
// @Tags         auth
// @Produce      json
// @Param        id     path      string  true  "User id"
// @Param        token  path      string  true  "Reset token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/users/reset-password/{id}/{token} [get]
func (h *AuthHandler) ValidateResetLink(c echo.Context) error {
	ack, err := h.auth.ValidateResetLink(c.Request().Context(), c.Param("id"), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: ack.Message})
}

// ResetPassword consumes the reset token and stores the new password.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset payload"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ack, err := h.auth.ResetPassword(c.Request().Context(), ports.ResetPasswordInput{
		UserID:      req.UserID,
		Token:       req.Token,
		NewPassword: req.Password,
	})
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("consume", "rejected").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("consume", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: ack.Message})
}
