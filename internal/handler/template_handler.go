package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velocityrides/template-store/internal/dto"
	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/service"
)

type TemplateHandler struct {
	catalog      service.CatalogService
	reservations service.ReservationService
	reports      service.ReportService
}

func NewTemplateHandler(catalog service.CatalogService, reservations service.ReservationService, reports service.ReportService) *TemplateHandler {
	return &TemplateHandler{catalog: catalog, reservations: reservations, reports: reports}
}

func (h *TemplateHandler) RegisterRoutes(e *echo.Echo) {
	templates := e.Group("/api/v1/templates")
	templates.GET("", h.ListTemplates)
	templates.GET("/:id", h.GetTemplate)
	templates.POST("/:id/purchase", h.SubmitPurchase)
	templates.POST("/:id/wishlist", h.ToggleWishlist)
	templates.POST("/:id/report", h.SubmitReport)

	admin := e.Group("/api/v1/admin/templates")
	admin.POST("", h.CreateTemplate)
	admin.POST("/:id/complete", h.CompletePurchase)
}

func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	username := c.QueryParam("username")
	filter := service.CatalogFilter(c.QueryParam("filter"))
	if filter == "" {
		filter = service.FilterAll
	}

	views, err := h.catalog.ListTemplates(c.Request().Context(), username, filter, c.QueryParam("q"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TemplateResponse, len(views))
	for i := range views {
		resp[i] = dto.ToTemplateResponse(&views[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	view, err := h.catalog.GetTemplate(c.Request().Context(), c.Param("id"), c.QueryParam("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTemplateResponse(view))
}

func (h *TemplateHandler) SubmitPurchase(c echo.Context) error {
	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var pickupDate *time.Time
	if req.PickupDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.PickupDate, time.UTC)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "pickup_date must be YYYY-MM-DD")
		}
		pickupDate = &d
	}

	reservation, err := h.reservations.SubmitPurchaseRequest(c.Request().Context(), service.SubmitPurchaseInput{
		TemplateID: c.Param("id"),
		Username:   req.Username,
		Contact:    req.Contact,
		PickupDate: pickupDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *TemplateHandler) ToggleWishlist(c echo.Context) error {
	var req dto.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	wishlisted, err := h.reservations.ToggleWishlist(c.Request().Context(), c.Param("id"), req.Username)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.WishlistToggleResponse{
		TemplateID: c.Param("id"),
		Wishlisted: wishlisted,
	})
}

func (h *TemplateHandler) SubmitReport(c echo.Context) error {
	var req dto.ReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.reports.SubmitReport(c.Request().Context(), c.Param("id"), req.Username, req.Issue); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusAccepted)
}

func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req dto.CreateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	template := &models.Template{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Gamepass:    req.Gamepass,
		Image:       req.Image,
		Tags:        req.Tags,
	}
	if err := h.catalog.CreateTemplate(c.Request().Context(), template); err != nil {
		return toHTTPError(err)
	}

	view := service.TemplateView{Template: *template, State: models.StateAvailable}
	return c.JSON(http.StatusCreated, dto.ToTemplateResponse(&view))
}

func (h *TemplateHandler) CompletePurchase(c echo.Context) error {
	var req dto.CompletePurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	template, err := h.reservations.CompletePurchase(c.Request().Context(), c.Param("id"), req.Buyer)
	if err != nil {
		return toHTTPError(err)
	}

	view := service.TemplateView{Template: *template, State: models.StateOwned}
	return c.JSON(http.StatusOK, dto.ToTemplateResponse(&view))
}
