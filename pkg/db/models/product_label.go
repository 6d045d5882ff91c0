package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// ProductLabel is an admin-defined categorical tag with a display color and
// a sort priority. Lower priority sorts first.
type ProductLabel struct {
	ID       uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string              `gorm:"column:name;not null;uniqueIndex:idx_labels_name_category,composite:category" json:"name"`
	Category enums.LabelCategory `gorm:"column:category;not null" json:"category"`
	Color    string              `gorm:"column:color;not null" json:"color"`
	Priority int                 `gorm:"column:priority;not null;default:1" json:"priority"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
