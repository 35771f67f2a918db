package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
	"github.com/velocityrides/template-store/pkg/clock"
)

// SessionHandler records logins. There is no password and no session
// token; logging in just captures the username and its last-seen time.
// Logins deliberately produce no notification feed entry.
type SessionHandler struct {
	users repository.UserRepository
	clock clock.Clock
}

func NewSessionHandler(users repository.UserRepository, clk clock.Clock) *SessionHandler {
	return &SessionHandler{users: users, clock: clk}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/session/login", h.Login)
	e.POST("/api/v1/session/logout", h.Logout)
	e.GET("/api/v1/session/:username", h.GetSession)
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	user := &models.User{
		Username:    username,
		LastLoginAt: h.clock.Now(),
	}
	if err := h.users.Upsert(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Username:    user.Username,
		LastLoginAt: user.LastLoginAt,
	})
}

// Logout holds no server-side session state to clear; it exists so
// clients have a symmetric endpoint to call.
func (h *SessionHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	user, err := h.users.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Username:    user.Username,
		LastLoginAt: user.LastLoginAt,
	})
}
