package labels

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// Repository defines persistence operations for product labels.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAll(ctx context.Context) ([]models.ProductLabel, error)
	ListByCategory(ctx context.Context, category enums.LabelCategory) ([]models.ProductLabel, error)
	Find(ctx context.Context, id uuid.UUID) (*models.ProductLabel, error)
	FindByName(ctx context.Context, category enums.LabelCategory, name string) (*models.ProductLabel, error)
	Create(ctx context.Context, label *models.ProductLabel) error
	Save(ctx context.Context, label *models.ProductLabel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a labels repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListAll(ctx context.Context) ([]models.ProductLabel, error) {
	var labels []models.ProductLabel
	err := r.db.WithContext(ctx).
		Order("category ASC, priority ASC, name ASC").
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repository) ListByCategory(ctx context.Context, category enums.LabelCategory) ([]models.ProductLabel, error) {
	var labels []models.ProductLabel
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("priority ASC, name ASC").
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.ProductLabel, error) {
	var label models.ProductLabel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *repository) FindByName(ctx context.Context, category enums.LabelCategory, name string) (*models.ProductLabel, error) {
	var label models.ProductLabel
	err := r.db.WithContext(ctx).
		Where("category = ? AND name = ?", category, name).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *repository) Create(ctx context.Context, label *models.ProductLabel) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *repository) Save(ctx context.Context, label *models.ProductLabel) error {
	return r.db.WithContext(ctx).Save(label).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductLabel{}, "id = ?", id).Error
}
