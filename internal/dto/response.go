package dto

import (
	"time"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/service"
)

type TemplateResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Gamepass    string               `json:"gamepass"`
	Image       string               `json:"image"`
	Purchased   bool                 `json:"purchased"`
	Buyer       *string              `json:"buyer,omitempty"`
	Tags        []string             `json:"tags"`
	State       models.TemplateState `json:"state"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ReservationResponse struct {
	ID         uint    `json:"id"`
	TemplateID string  `json:"template_id"`
	Username   string  `json:"username"`
	Contact    string  `json:"contact"`
	PickupDate *string `json:"pickup_date,omitempty"`
	CreatedAt  int64   `json:"created_at"`
}

type NotificationResponse struct {
	ID         string                  `json:"id"`
	Kind       models.NotificationKind `json:"kind"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	TemplateID *string                 `json:"template_id,omitempty"`
	Read       bool                    `json:"read"`
	CreatedAt  int64                   `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type PickupDatesResponse struct {
	Dates []string `json:"dates"`
}

type ValidateDateResponse struct {
	Date       string `json:"date"`
	Selectable bool   `json:"selectable"`
}

type WishlistToggleResponse struct {
	TemplateID string `json:"template_id"`
	Wishlisted bool   `json:"wishlisted"`
}

type DraftResponse struct {
	Username   string            `json:"username"`
	TemplateID string            `json:"template_id"`
	Step       service.DraftStep `json:"step"`
	Contact    string            `json:"contact,omitempty"`
	PickupDate *string           `json:"pickup_date,omitempty"`
	UpdatedAt  int64             `json:"updated_at"`
}

type SessionResponse struct {
	Username    string    `json:"username"`
	LastLoginAt time.Time `json:"last_login_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToTemplateResponse(v *service.TemplateView) TemplateResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return TemplateResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
		Gamepass:    v.Gamepass,
		Image:       v.Image,
		Purchased:   v.Purchased,
		Buyer:       v.Buyer,
		Tags:        tags,
		State:       v.State,
		CreatedAt:   v.CreatedAt,
	}
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		TemplateID: r.TemplateID,
		Username:   r.Username,
		Contact:    r.Contact,
		PickupDate: r.PickupDate,
		CreatedAt:  r.CreatedAt,
	}
}

func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Kind:       n.Kind,
		Title:      n.Title,
		Message:    n.Message,
		TemplateID: n.TemplateID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

func ToDraftResponse(d *service.PurchaseDraft) DraftResponse {
	return DraftResponse{
		Username:   d.Username,
		TemplateID: d.TemplateID,
		Step:       d.Step,
		Contact:    d.Contact,
		PickupDate: d.PickupDate,
		UpdatedAt:  d.UpdatedAt,
	}
}
