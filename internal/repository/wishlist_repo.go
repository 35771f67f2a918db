package repository

import (
	"context"
	"errors"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(ctx context.Context, entry *models.WishlistEntry) error
	Find(ctx context.Context, templateID, username string) (*models.WishlistEntry, error)
	FindByUser(ctx context.Context, username string) ([]models.WishlistEntry, error)
	Delete(ctx context.Context, templateID, username string) error
	DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *wishlistRepository) Create(ctx context.Context, entry *models.WishlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *wishlistRepository) Find(ctx context.Context, templateID, username string) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	err := r.db.WithContext(ctx).
		Where("template_id = ? AND username = ?", templateID, username).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wishlistRepository) FindByUser(ctx context.Context, username string) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, templateID, username string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ? AND username = ?", templateID, username).
		Delete(&models.WishlistEntry{}).Error
}

func (r *wishlistRepository) DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error {
	return r.conn(tx).WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&models.WishlistEntry{}).Error
}
