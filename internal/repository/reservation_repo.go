package repository

import (
	"context"
	"errors"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	FindByTemplateAndUser(ctx context.Context, templateID, username string) (*models.Reservation, error)
	FindByUser(ctx context.Context, username string) ([]models.Reservation, error)
	DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByTemplateAndUser(ctx context.Context, templateID, username string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Where("template_id = ? AND username = ?", templateID, username).
		First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByUser(ctx context.Context, username string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// DeleteByTemplate removes every reservation for the template regardless of
// owner. Used when a purchase completes and competing claims collapse.
func (r *reservationRepository) DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error {
	return r.conn(tx).WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&models.Reservation{}).Error
}
