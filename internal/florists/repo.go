package florists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
)

// Repository defines persistence operations for florists.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Florist, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Florist, error)
	FindByEmail(ctx context.Context, email string) (*models.Florist, error)
	Create(ctx context.Context, florist *models.Florist) error
	Save(ctx context.Context, florist *models.Florist) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a florists repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Florist, error) {
	var florists []models.Florist
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&florists).Error; err != nil {
		return nil, err
	}
	return florists, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Florist, error) {
	var florist models.Florist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&florist).Error; err != nil {
		return nil, err
	}
	return &florist, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Florist, error) {
	var florist models.Florist
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&florist).Error; err != nil {
		return nil, err
	}
	return &florist, nil
}

func (r *repository) Create(ctx context.Context, florist *models.Florist) error {
	return r.db.WithContext(ctx).Create(florist).Error
}

func (r *repository) Save(ctx context.Context, florist *models.Florist) error {
	return r.db.WithContext(ctx).Save(florist).Error
}

// Delete removes the florist row only. Callers must release the florist's
// orders first (see Service.Delete), otherwise the FK's ON DELETE SET NULL
// would leave assigned rows with no florist.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Florist{}, "id = ?", id).Error
}
