package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// Repository defines persistence operations for catalog products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, product *models.Product) error
	Find(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyID string) (*models.Product, error)
	FindByIdentity(ctx context.Context, storeID uuid.UUID, title, variant string) (*models.Product, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error
}

// syncedColumns are the Shopify-derived columns a re-sync may overwrite.
// Admin-assigned labels stay put across polls.
var syncedColumns = []string{"title", "variant", "tags"}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert inserts the product or refreshes only the Shopify-derived columns
// on conflict.
func (r *repository) Upsert(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "shopify_id"}},
			DoUpdates: clause.AssignmentColumns(syncedColumns),
		}).
		Create(product).Error
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND shopify_id = ?", storeID, shopifyID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIdentity looks a product up by its display identity, the title
// and variant an order's first line item carries.
func (r *repository) FindByIdentity(ctx context.Context, storeID uuid.UUID, title, variant string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND LOWER(title) = LOWER(?) AND LOWER(variant) = LOWER(?)", storeID, title, variant).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// ReplaceLabel rewrites every product carrying oldName in the given
// category to newName.
func (r *repository) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	column := "difficulty_label"
	if category == enums.LabelCategoryProductType {
		column = "product_type_label"
	}
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where(column+" = ?", oldName).
		Update(column, newName).Error
}
