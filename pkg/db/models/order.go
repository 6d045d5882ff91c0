package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// Order is the canonical florist-facing order row. One row per Shopify
// order, keyed by the order name with the leading '#' stripped, scoped to
// the owning store. Rows are upserted by sync and never deleted; Shopify
// stays the source of truth.
type Order struct {
	ID      string    `gorm:"column:id;primaryKey" json:"id"`
	StoreID uuid.UUID `gorm:"column:store_id;type:uuid;primaryKey" json:"storeId"`

	ShopifyID      string `gorm:"column:shopify_id;not null" json:"shopifyId"`
	ProductName    string `gorm:"column:product_name;not null" json:"productName"`
	ProductVariant string `gorm:"column:product_variant" json:"productVariant"`

	Date         string             `gorm:"column:date;not null;index" json:"date"`
	Timeslot     string             `gorm:"column:timeslot;not null" json:"timeslot"`
	DeliveryType enums.DeliveryType `gorm:"column:delivery_type;not null;default:'delivery'" json:"deliveryType"`

	Remarks               string `gorm:"column:remarks" json:"remarks"`
	ProductCustomizations string `gorm:"column:product_customizations" json:"productCustomizations"`

	DifficultyLabel  string `gorm:"column:difficulty_label;not null" json:"difficultyLabel"`
	ProductTypeLabel string `gorm:"column:product_type_label;not null" json:"productTypeLabel"`

	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)" json:"totalPrice"`

	Status            enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	AssignedFloristID *uuid.UUID        `gorm:"column:assigned_florist_id;type:uuid" json:"assignedFloristId,omitempty"`
	AssignedAt        *time.Time        `gorm:"column:assigned_at" json:"assignedAt,omitempty"`
	CompletedAt       *time.Time        `gorm:"column:completed_at" json:"completedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
