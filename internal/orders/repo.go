package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// Repository defines persistence operations for order rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, order *models.Order) error
	Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error)
	ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error
	ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error
	SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error
}

// syncedColumns are the Shopify-derived columns a re-sync may overwrite.
// Everything user-driven (status, assignment, remarks, customizations,
// backfilled labels) survives the next poll untouched.
var syncedColumns = []string{
	"shopify_id",
	"product_name",
	"product_variant",
	"date",
	"timeslot",
	"delivery_type",
	"total_price",
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert inserts the order or, when the row already exists, refreshes only
// the Shopify-derived columns.
func (r *repository) Upsert(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns(syncedColumns),
		}).
		Create(order).Error
}

func (r *repository) Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Where("date = ?", date)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}
	var orders []models.Order
	if err := query.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ReplaceLabel rewrites every order carrying oldName in the given category
// to newName. Used when a label is renamed or deleted.
func (r *repository) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	column := labelColumn(category)
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where(column+" = ?", oldName).
		Update(column, newName).Error
}

// ReleaseFlorist detaches every order held by the florist. Open orders go
// back to pending with the assignment cleared; completed orders keep their
// status and completion time but drop the florist reference and assigned_at.
func (r *repository) ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("assigned_florist_id = ? AND status <> ?", floristID, enums.OrderStatusCompleted).
		Updates(map[string]any{
			"status":              enums.OrderStatusPending,
			"assigned_florist_id": nil,
			"assigned_at":         nil,
		}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("assigned_florist_id = ?", floristID).
		Updates(map[string]any{
			"assigned_florist_id": nil,
			"assigned_at":         nil,
		}).Error
}

// SetLabelsForProduct pushes a product's current labels onto the orders
// that reference it. Matching is by name, and by variant when the product
// has one.
func (r *repository) SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ? AND product_name = ?", storeID, productName)
	if variant != "" {
		query = query.Where("product_variant = ?", variant)
	}
	return query.Updates(map[string]any{
		"difficulty_label":   difficulty,
		"product_type_label": productType,
	}).Error
}

func labelColumn(category enums.LabelCategory) string {
	if category == enums.LabelCategoryProductType {
		return "product_type_label"
	}
	return "difficulty_label"
}
