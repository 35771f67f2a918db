package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/service"
)

type DraftHandler struct {
	drafts service.DraftService
}

func NewDraftHandler(drafts service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

func (h *DraftHandler) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/api/v1/drafts")
	group.POST("", h.OpenDraft)
	group.GET("/:username", h.GetDraft)
	group.PUT("/contact", h.SetContact)
	group.PUT("/date", h.SelectDate)
	group.POST("/confirm", h.Confirm)
	group.DELETE("/:username", h.Discard)
}

func (h *DraftHandler) OpenDraft(c echo.Context) error {
	var req dto.OpenDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	draft, err := h.drafts.Open(c.Request().Context(), req.Username, req.TemplateID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) GetDraft(c echo.Context) error {
	draft, err := h.drafts.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	if draft == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no draft in progress")
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) SetContact(c echo.Context) error {
	var req dto.DraftContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	draft, err := h.drafts.SetContact(c.Request().Context(), req.Username, req.Contact)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) SelectDate(c echo.Context) error {
	var req dto.DraftDateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := time.ParseInLocation("2006-01-02", req.PickupDate, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "pickup_date must be YYYY-MM-DD")
	}

	draft, err := h.drafts.SelectDate(c.Request().Context(), req.Username, date)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

func (h *DraftHandler) Confirm(c echo.Context) error {
	var req dto.DraftActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.drafts.Confirm(c.Request().Context(), req.Username)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *DraftHandler) Discard(c echo.Context) error {
	if err := h.drafts.Discard(c.Request().Context(), c.Param("username")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
