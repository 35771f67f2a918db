package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/service"
)

const defaultLookaheadDays = 60

type ScheduleHandler struct {
	schedule *service.ScheduleService
}

func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

func (h *ScheduleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/pickup-dates", h.ListPickupDates)
	e.POST("/api/v1/pickup-dates/validate", h.ValidateDate)
}

func (h *ScheduleHandler) ListPickupDates(c echo.Context) error {
	days := defaultLookaheadDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 366 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be between 1 and 366")
		}
		days = parsed
	}

	dates := h.schedule.SelectableDates(days)
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}
	return c.JSON(http.StatusOK, dto.PickupDatesResponse{Dates: formatted})
}

func (h *ScheduleHandler) ValidateDate(c echo.Context) error {
	var req dto.ValidateDateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	return c.JSON(http.StatusOK, dto.ValidateDateResponse{
		Date:       req.Date,
		Selectable: h.schedule.IsSelectable(date),
	})
}
