package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a curated product grouping surfaced on the storefront.
type Collection struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string      `gorm:"column:name;not null"`
	Description  *string     `gorm:"column:description"`
	MediaAssetID *uuid.UUID  `gorm:"column:media_asset_id;type:uuid"`
	MediaAsset   *MediaAsset `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:SET NULL"`
	ImageURL     *string     `gorm:"column:image_url"`
	LinkURL      *string     `gorm:"column:link_url"`
	VisitCount   int         `gorm:"column:visit_count;not null;default:0"`
	DisplayOrder int         `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool        `gorm:"column:is_visible;not null;default:true"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
