package models

import (
	"time"

	"github.com/google/uuid"
)

// Florist is a staff member orders get assigned to.
type Florist struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"column:name;not null" json:"name"`
	Email string    `gorm:"column:email;not null;uniqueIndex" json:"email"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
