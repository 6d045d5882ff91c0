package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a per-store catalog entry. The difficulty and product-type
// labels here are copied onto orders at creation time; changing them only
// reaches existing orders through the explicit propagation step.
type Product struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index" json:"storeId"`
	ShopifyID string    `gorm:"column:shopify_id;not null;uniqueIndex:idx_products_store_shopify,composite:store_id" json:"shopifyId"`

	Title   string         `gorm:"column:title;not null" json:"title"`
	Variant string         `gorm:"column:variant" json:"variant"`
	Tags    pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	DifficultyLabel  string `gorm:"column:difficulty_label;not null" json:"difficultyLabel"`
	ProductTypeLabel string `gorm:"column:product_type_label;not null" json:"productTypeLabel"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
