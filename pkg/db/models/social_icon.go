package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialIcon is one footer social link. IconRef is either a CSS class name or
// the resolved URL of the linked media asset.
type SocialIcon struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Platform     string      `gorm:"column:platform;not null"`
	IconRef      string      `gorm:"column:icon_ref;not null"`
	MediaAssetID *uuid.UUID  `gorm:"column:media_asset_id;type:uuid"`
	MediaAsset   *MediaAsset `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:SET NULL"`
	URL          string      `gorm:"column:url;not null"`
	DisplayOrder int         `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool        `gorm:"column:is_visible;not null;default:true"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
