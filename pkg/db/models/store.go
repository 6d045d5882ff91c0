package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant boundary: one Shopify shop per row. Orders and
// products always carry a store id. The extraction columns let an admin
// override the built-in tag-parsing patterns per store.
type Store struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	Domain string    `gorm:"column:domain;not null;uniqueIndex" json:"domain"`
	Color  string    `gorm:"column:color;not null;default:'#2563eb'" json:"color"`

	AccessToken   string `gorm:"column:access_token;not null" json:"-"`
	APIVersion    string `gorm:"column:api_version;not null" json:"apiVersion"`
	WebhookSecret string `gorm:"column:webhook_secret" json:"-"`

	DateSource         string `gorm:"column:date_source;not null;default:'tags'" json:"dateSource"`
	DateTagPattern     string `gorm:"column:date_tag_pattern" json:"dateTagPattern"`
	TimeslotSource     string `gorm:"column:timeslot_source;not null;default:'tags'" json:"timeslotSource"`
	TimeslotTagPattern string `gorm:"column:timeslot_tag_pattern" json:"timeslotTagPattern"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
