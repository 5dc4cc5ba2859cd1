package models

import (
	"time"

	"github.com/google/uuid"
)

// CarouselSlide is one hero banner. ImageURL is denormalized from the media
// asset so the dashboard payload never needs a join; StartsAt/EndsAt bound an
// optional scheduling window.
type CarouselSlide struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string      `gorm:"column:title;not null"`
	Subtitle     *string     `gorm:"column:subtitle"`
	ImageURL     string      `gorm:"column:image_url;not null"`
	MediaAssetID *uuid.UUID  `gorm:"column:media_asset_id;type:uuid"`
	MediaAsset   *MediaAsset `gorm:"foreignKey:MediaAssetID;constraint:OnDelete:SET NULL"`
	LinkURL      *string     `gorm:"column:link_url"`
	ButtonText   *string     `gorm:"column:button_text"`
	DisplayOrder int         `gorm:"column:display_order;not null;default:0"`
	IsVisible    bool        `gorm:"column:is_visible;not null;default:true"`
	StartsAt     *time.Time  `gorm:"column:starts_at"`
	EndsAt       *time.Time  `gorm:"column:ends_at"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
