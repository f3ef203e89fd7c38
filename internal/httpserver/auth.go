package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_api/internal/logging"
	authmw "github.com/Skotchmaster/order_api/internal/middleware/auth"
	"github.com/Skotchmaster/order_api/internal/service"
	"github.com/Skotchmaster/order_api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type authResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	User      transport.UserResponse `json:"user"`
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(c, "register_error", "cannot register user", err)
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success:   true,
		Message:   "user registered",
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httpError(c, "login_error", "cannot log in", err)
	}

	return c.JSON(http.StatusOK, authResponse{
		Success:   true,
		Message:   "login successful",
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, err := h.Svc.Profile(authmw.Identity(c))
	if err != nil {
		return httpError(c, "profile_error", "cannot load profile", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"message": "authenticated user",
	})
}
