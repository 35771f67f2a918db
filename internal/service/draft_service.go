package service

import (
	"context"
	"strings"
	"time"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
	"github.com/velocityrides/template-store/pkg/clock"
)

// DraftStep is the position of an in-progress purchase in its workflow.
// A draft walks details_open -> contact_captured -> date_selected and is
// deleted on submit or discard; "idle" is simply the absence of a draft.
type DraftStep string

const (
	DraftStepDetails DraftStep = "details_open"
	DraftStepContact DraftStep = "contact_captured"
	DraftStepDate    DraftStep = "date_selected"
)

// PurchaseDraft is the short-lived state of a purchase being assembled:
// the selected template plus whatever the user has entered so far. One
// draft per user; opening another template replaces it.
type PurchaseDraft struct {
	Username   string    `json:"username"`
	TemplateID string    `json:"template_id"`
	Step       DraftStep `json:"step"`
	Contact    string    `json:"contact,omitempty"`
	PickupDate *string   `json:"pickup_date,omitempty"` // YYYY-MM-DD
	UpdatedAt  int64     `json:"updated_at"`            // epoch millis
}

// DraftStore holds drafts with a bounded lifetime. Get returns (nil, nil)
// when the user has no draft.
type DraftStore interface {
	Get(ctx context.Context, username string) (*PurchaseDraft, error)
	Save(ctx context.Context, draft *PurchaseDraft) error
	Delete(ctx context.Context, username string) error
}

type DraftService interface {
	Open(ctx context.Context, username, templateID string) (*PurchaseDraft, error)
	SetContact(ctx context.Context, username, contact string) (*PurchaseDraft, error)
	SelectDate(ctx context.Context, username string, date time.Time) (*PurchaseDraft, error)
	Confirm(ctx context.Context, username string) (*models.Reservation, error)
	Discard(ctx context.Context, username string) error
	Get(ctx context.Context, username string) (*PurchaseDraft, error)
}

type draftService struct {
	store        DraftStore
	reservations ReservationService
	templateRepo repository.TemplateRepository
	schedule     *ScheduleService
	clock        clock.Clock
	pickupDates  bool
}

type DraftOption func(*draftService)

// WithDraftPickupDates mirrors the reservation service's date-capture flag:
// when off, Confirm accepts a draft without a selected date.
func WithDraftPickupDates(enabled bool) DraftOption {
	return func(s *draftService) {
		s.pickupDates = enabled
	}
}

func NewDraftService(
	store DraftStore,
	reservations ReservationService,
	templateRepo repository.TemplateRepository,
	schedule *ScheduleService,
	clk clock.Clock,
	opts ...DraftOption,
) DraftService {
	svc := &draftService{
		store:        store,
		reservations: reservations,
		templateRepo: templateRepo,
		schedule:     schedule,
		clock:        clk,
		pickupDates:  true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Open starts a purchase draft for the template, replacing any draft the
// user already had. Templates that are sold or already pending for this
// user cannot be drafted.
func (s *draftService) Open(ctx context.Context, username, templateID string) (*PurchaseDraft, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if template.Purchased {
		return nil, ErrTemplateSold
	}

	pending, err := s.reservations.IsPending(ctx, templateID, username)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrReservationExists
	}

	draft := &PurchaseDraft{
		Username:   username,
		TemplateID: templateID,
		Step:       DraftStepDetails,
		UpdatedAt:  s.clock.Now().UnixMilli(),
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *draftService) SetContact(ctx context.Context, username, contact string) (*PurchaseDraft, error) {
	draft, err := s.get(ctx, username)
	if err != nil {
		return nil, err
	}

	contact = strings.TrimSpace(contact)
	if contact == "" {
		return nil, ErrContactRequired
	}

	draft.Contact = contact
	if draft.Step == DraftStepDetails {
		draft.Step = DraftStepContact
	}
	draft.UpdatedAt = s.clock.Now().UnixMilli()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SelectDate sets the pickup date, replacing any prior selection.
func (s *draftService) SelectDate(ctx context.Context, username string, date time.Time) (*PurchaseDraft, error) {
	draft, err := s.get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft.Step == DraftStepDetails {
		return nil, ErrDraftNotReady
	}
	if !s.schedule.IsSelectable(date) {
		return nil, ErrPickupDateNotSelectable
	}

	formatted := date.Format("2006-01-02")
	draft.PickupDate = &formatted
	draft.Step = DraftStepDate
	draft.UpdatedAt = s.clock.Now().UnixMilli()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Confirm hands the draft to the reservation engine. On success the draft
// is deleted; on a delivery failure it is kept so the user can retry.
func (s *draftService) Confirm(ctx context.Context, username string) (*models.Reservation, error) {
	draft, err := s.get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft.Step == DraftStepDetails {
		return nil, ErrDraftNotReady
	}
	if s.pickupDates && draft.PickupDate == nil {
		return nil, ErrDraftNotReady
	}

	var pickupDate *time.Time
	if draft.PickupDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *draft.PickupDate, time.UTC)
		if err != nil {
			return nil, err
		}
		pickupDate = &d
	}

	reservation, err := s.reservations.SubmitPurchaseRequest(ctx, SubmitPurchaseInput{
		TemplateID: draft.TemplateID,
		Username:   draft.Username,
		Contact:    draft.Contact,
		PickupDate: pickupDate,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, username); err != nil {
		return reservation, err
	}
	return reservation, nil
}

// Discard drops the draft. Nothing persisted needs rolling back: the
// reservation only exists after Confirm succeeds.
func (s *draftService) Discard(ctx context.Context, username string) error {
	return s.store.Delete(ctx, username)
}

func (s *draftService) Get(ctx context.Context, username string) (*PurchaseDraft, error) {
	return s.store.Get(ctx, username)
}

func (s *draftService) get(ctx context.Context, username string) (*PurchaseDraft, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	draft, err := s.store.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNoDraft
	}
	return draft, nil
}
