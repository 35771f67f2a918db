package repository

import (
	"context"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUser(ctx context.Context, username string) ([]models.Notification, error)
	DeleteOlderThan(ctx context.Context, username string, cutoffMillis int64) error
	MarkRead(ctx context.Context, username, id string) error
	CountUnread(ctx context.Context, username string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByUser(ctx context.Context, username string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, username string, cutoffMillis int64) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND created_at <= ?", username, cutoffMillis).
		Delete(&models.Notification{}).Error
}

func (r *notificationRepository) MarkRead(ctx context.Context, username, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("username = ? AND id = ?", username, id).
		Update("read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("username = ? AND read = ?", username, false).
		Count(&count).Error
	return count, err
}
