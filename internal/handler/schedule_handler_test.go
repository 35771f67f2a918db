package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/service"
	"github.com/velocityrides/template-store/pkg/clock"
)

func fixedSchedule() *service.ScheduleService {
	return service.NewScheduleService(clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestListPickupDates_Handler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pickup-dates?days=14", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewScheduleHandler(fixedSchedule())
	err := h.ListPickupDates(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PickupDatesResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-01-06", "2024-01-07", "2024-01-12", "2024-01-13"}, resp.Dates)
}

func TestListPickupDates_Handler_BadDays(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pickup-dates?days=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewScheduleHandler(fixedSchedule())
	err := h.ListPickupDates(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestValidateDate_Handler(t *testing.T) {
	cases := []struct {
		date       string
		selectable bool
	}{
		{"2024-01-06", true},  // Saturday
		{"2024-01-05", false}, // Friday, odd week
		{"2024-01-07", true},  // Sunday, even week
		{"2023-12-30", false}, // Saturday in the past
	}

	for _, tc := range cases {
		e := echo.New()
		body := `{"date":"` + tc.date + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pickup-dates/validate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewScheduleHandler(fixedSchedule())
		err := h.ValidateDate(c)

		assert.NoError(t, err)

		var resp dto.ValidateDateResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, tc.selectable, resp.Selectable, "date %s", tc.date)
	}
}

func TestValidateDate_Handler_BadFormat(t *testing.T) {
	e := echo.New()
	body := `{"date":"Jan 6 2024"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pickup-dates/validate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewScheduleHandler(fixedSchedule())
	err := h.ValidateDate(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
