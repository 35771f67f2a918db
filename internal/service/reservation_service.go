package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
	"github.com/velocityrides/template-store/pkg/clock"
	"gorm.io/gorm"
)

type SubmitPurchaseInput struct {
	TemplateID string
	Username   string
	Contact    string
	PickupDate *time.Time // calendar date; nil when date capture is disabled
}

type ReservationService interface {
	SubmitPurchaseRequest(ctx context.Context, in SubmitPurchaseInput) (*models.Reservation, error)
	CompletePurchase(ctx context.Context, templateID, buyer string) (*models.Template, error)
	ToggleWishlist(ctx context.Context, templateID, username string) (bool, error)
	StateFor(ctx context.Context, templateID, username string) (models.TemplateState, error)
	IsPending(ctx context.Context, templateID, username string) (bool, error)
	IsWishlisted(ctx context.Context, templateID, username string) (bool, error)
}

type reservationService struct {
	templateRepo    repository.TemplateRepository
	reservationRepo repository.ReservationRepository
	wishlistRepo    repository.WishlistRepository
	tx              repository.TxManager
	notifications   *NotificationService
	notifier        Notifier
	schedule        *ScheduleService
	clock           clock.Clock
	pickupDates     bool
}

type ReservationOption func(*reservationService)

// WithPickupDates toggles pickup-date capture on purchase requests. When
// off, requests without a date are accepted; a provided date is still
// validated.
func WithPickupDates(enabled bool) ReservationOption {
	return func(s *reservationService) {
		s.pickupDates = enabled
	}
}

func NewReservationService(
	templateRepo repository.TemplateRepository,
	reservationRepo repository.ReservationRepository,
	wishlistRepo repository.WishlistRepository,
	tx repository.TxManager,
	notifications *NotificationService,
	notifier Notifier,
	schedule *ScheduleService,
	clk clock.Clock,
	opts ...ReservationOption,
) ReservationService {
	svc := &reservationService{
		templateRepo:    templateRepo,
		reservationRepo: reservationRepo,
		wishlistRepo:    wishlistRepo,
		tx:              tx,
		notifications:   notifications,
		notifier:        notifier,
		schedule:        schedule,
		clock:           clk,
		pickupDates:     true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SubmitPurchaseRequest records a user's purchase claim. The outbound
// notice is delivered first: if it fails, nothing is persisted and the
// caller may retry (fail-closed).
func (s *reservationService) SubmitPurchaseRequest(ctx context.Context, in SubmitPurchaseInput) (*models.Reservation, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, ErrUsernameRequired
	}
	contact := strings.TrimSpace(in.Contact)
	if contact == "" {
		return nil, ErrContactRequired
	}

	template, err := s.templateRepo.FindByID(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if template.Purchased {
		return nil, ErrTemplateSold
	}

	existing, err := s.reservationRepo.FindByTemplateAndUser(ctx, in.TemplateID, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReservationExists
	}

	if s.pickupDates && in.PickupDate == nil {
		return nil, ErrPickupDateRequired
	}

	var pickupDate *string
	var pickupHuman string
	if in.PickupDate != nil {
		if !s.schedule.IsSelectable(*in.PickupDate) {
			return nil, ErrPickupDateNotSelectable
		}
		formatted := in.PickupDate.Format("2006-01-02")
		pickupDate = &formatted
		pickupHuman = in.PickupDate.Format("Monday, 2 January 2006")
	}

	notice := PurchaseNotice{
		Username:   in.Username,
		TemplateID: template.ID,
		Title:      template.Title,
		Price:      template.Price,
		Gamepass:   template.Gamepass,
		Image:      template.Image,
		Contact:    contact,
		PickupDate: pickupHuman,
	}
	if err := s.notifier.NotifyPurchase(ctx, notice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotifierFailed, err)
	}

	reservation := &models.Reservation{
		TemplateID: in.TemplateID,
		Username:   in.Username,
		Contact:    contact,
		PickupDate: pickupDate,
		CreatedAt:  s.clock.Now().UnixMilli(),
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	// The feed entry is advisory; the reservation itself is already durable.
	_, _ = s.notifications.Record(ctx, in.Username, models.NotificationWarning,
		"Purchase Pending",
		fmt.Sprintf("Your purchase request for %q is being processed.", template.Title),
		&template.ID)

	return reservation, nil
}

// CompletePurchase marks the template sold to buyer and collapses every
// competing claim: all reservations and all wishlist entries for the
// template are purged, regardless of which user holds them. Idempotent on
// the purchased flag; the success notice fires only on the actual
// transition so duplicate admin triggers do not re-notify the buyer.
func (s *reservationService) CompletePurchase(ctx context.Context, templateID, buyer string) (*models.Template, error) {
	if strings.TrimSpace(buyer) == "" {
		return nil, ErrBuyerRequired
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	alreadySold := template.Purchased

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.templateRepo.MarkPurchased(ctx, tx, templateID, buyer); err != nil {
			return err
		}
		if err := s.reservationRepo.DeleteByTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		return s.wishlistRepo.DeleteByTemplate(ctx, tx, templateID)
	})
	if err != nil {
		return nil, err
	}

	template.Purchased = true
	template.Buyer = &buyer

	if !alreadySold {
		_, _ = s.notifications.Record(ctx, buyer, models.NotificationSuccess,
			"Purchase Completed!",
			fmt.Sprintf("You have successfully purchased %q. The team will contact you soon.", template.Title),
			&template.ID)
	}

	return template, nil
}

// ToggleWishlist adds the template to the user's wishlist, or removes it if
// already present. Sold templates cannot be wishlisted.
func (s *reservationService) ToggleWishlist(ctx context.Context, templateID, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, ErrUsernameRequired
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return false, err
	}
	if template == nil {
		return false, ErrTemplateNotFound
	}
	if template.Purchased {
		return false, ErrTemplateSold
	}

	entry, err := s.wishlistRepo.Find(ctx, templateID, username)
	if err != nil {
		return false, err
	}
	if entry != nil {
		if err := s.wishlistRepo.Delete(ctx, templateID, username); err != nil {
			return false, err
		}
		return false, nil
	}

	entry = &models.WishlistEntry{
		TemplateID: templateID,
		Username:   username,
		CreatedAt:  s.clock.Now().UnixMilli(),
	}
	if err := s.wishlistRepo.Create(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// StateFor resolves the single view state for a (template, user) pair.
func (s *reservationService) StateFor(ctx context.Context, templateID, username string) (models.TemplateState, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return "", err
	}
	if template == nil {
		return "", ErrTemplateNotFound
	}

	pending, err := s.IsPending(ctx, templateID, username)
	if err != nil {
		return "", err
	}
	wishlisted, err := s.IsWishlisted(ctx, templateID, username)
	if err != nil {
		return "", err
	}

	return StateOf(template, username, pending, wishlisted), nil
}

func (s *reservationService) IsPending(ctx context.Context, templateID, username string) (bool, error) {
	reservation, err := s.reservationRepo.FindByTemplateAndUser(ctx, templateID, username)
	if err != nil {
		return false, err
	}
	return reservation != nil, nil
}

func (s *reservationService) IsWishlisted(ctx context.Context, templateID, username string) (bool, error) {
	entry, err := s.wishlistRepo.Find(ctx, templateID, username)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// StateOf derives the view state from a template plus the user's pending
// and wishlist membership. Purchased templates are owned by the buyer and
// sold for everyone else; those two partition purchased=true.
func StateOf(template *models.Template, username string, pending, wishlisted bool) models.TemplateState {
	if template.Purchased {
		if template.Buyer != nil && *template.Buyer == username {
			return models.StateOwned
		}
		return models.StateSoldToOther
	}
	if pending {
		return models.StatePending
	}
	if wishlisted {
		return models.StateWishlisted
	}
	return models.StateAvailable
}
