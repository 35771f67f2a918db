package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/api/v1/notifications/:username")
	group.GET("", h.ListNotifications)
	group.GET("/unread", h.UnreadCount)
	group.POST("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.notifications.List(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = dto.ToNotificationResponse(&notifications[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notifications.MarkRead(c.Request().Context(), c.Param("username"), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
