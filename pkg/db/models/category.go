package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a structured product grouping with its own attribute schema.
type Category struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string              `gorm:"column:name;not null"`
	Slug         string              `gorm:"column:slug;not null;uniqueIndex"`
	Description  *string             `gorm:"column:description"`
	MediaAssetID *uuid.UUID          `gorm:"column:media_asset_id;type:uuid"`
	MediaAsset   *MediaAsset         `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:SET NULL"`
	IsActive     bool                `gorm:"column:is_active;not null;default:true"`
	Attributes   []CategoryAttribute `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
