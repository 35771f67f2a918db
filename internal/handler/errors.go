package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/service"
)

// toHTTPError maps the service error taxonomy onto HTTP statuses.
// Validation errors are 400, state conflicts 409, missing resources 404,
// and a failed outbound delivery 502 so the client knows to retry.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrContactRequired),
		errors.Is(err, service.ErrIssueRequired),
		errors.Is(err, service.ErrBuyerRequired),
		errors.Is(err, service.ErrTemplateIDRequired),
		errors.Is(err, service.ErrTemplateTitleRequired),
		errors.Is(err, service.ErrPickupDateRequired),
		errors.Is(err, service.ErrPickupDateNotSelectable),
		errors.Is(err, service.ErrDraftNotReady):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrNoDraft):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateSold),
		errors.Is(err, service.ErrReservationExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotifierFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
