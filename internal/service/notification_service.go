package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
	"github.com/velocityrides/template-store/pkg/clock"
)

const defaultNotificationTTL = 24 * time.Hour

// NotificationService keeps a per-user, time-bounded event feed. Entries
// older than the TTL are pruned lazily on every read, never by a timer.
type NotificationService struct {
	repo  repository.NotificationRepository
	clock clock.Clock
	ttl   time.Duration
}

type NotificationOption func(*NotificationService)

// WithNotificationTTL overrides the default 24h feed expiry.
func WithNotificationTTL(d time.Duration) NotificationOption {
	return func(s *NotificationService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func NewNotificationService(repo repository.NotificationRepository, clk clock.Clock, opts ...NotificationOption) *NotificationService {
	svc := &NotificationService{
		repo:  repo,
		clock: clk,
		ttl:   defaultNotificationTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *NotificationService) Record(ctx context.Context, username string, kind models.NotificationKind, title, message string, templateID *string) (*models.Notification, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	notification := &models.Notification{
		ID:         uuid.NewString(),
		Username:   username,
		Kind:       kind,
		Title:      title,
		Message:    message,
		TemplateID: templateID,
		CreatedAt:  s.clock.Now().UnixMilli(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List returns the user's feed newest first. Expired entries are removed
// from the store before the read so they never surface anywhere.
func (s *NotificationService) List(ctx context.Context, username string) ([]models.Notification, error) {
	if err := s.prune(ctx, username); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, username)
}

func (s *NotificationService) MarkRead(ctx context.Context, username, id string) error {
	return s.repo.MarkRead(ctx, username, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, username string) (int64, error) {
	if err := s.prune(ctx, username); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, username)
}

func (s *NotificationService) prune(ctx context.Context, username string) error {
	cutoff := s.clock.Now().Add(-s.ttl).UnixMilli()
	return s.repo.DeleteOlderThan(ctx, username, cutoff)
}
