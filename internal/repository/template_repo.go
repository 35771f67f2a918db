package repository

import (
	"context"
	"errors"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, id string) (*models.Template, error)
	FindAll(ctx context.Context) ([]models.Template, error)
	Count(ctx context.Context) (int64, error)
	MarkPurchased(ctx context.Context, tx *gorm.DB, id, buyer string) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *templateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// FindByID returns (nil, nil) when no template exists; absence is a valid
// state, not a fault.
func (r *templateRepository) FindByID(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAll(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Template{}).Count(&count).Error
	return count, err
}

func (r *templateRepository) MarkPurchased(ctx context.Context, tx *gorm.DB, id, buyer string) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Template{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"purchased": true, "buyer": buyer}).Error
}
